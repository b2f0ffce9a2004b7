package cmd

import (
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/spf13/cobra"
)

func configCmd(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the deployment config file",
	}

	cmd.AddCommand(configShowCmd(opts))
	cmd.AddCommand(configSetCmd(opts))

	return cmd
}

func configShowCmd(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config, including derived defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewFileManager()
			cfg, err := manager.Load(opts.ConfigPath)
			if err != nil {
				return err
			}

			// config is a JSON document, text rendering has nothing to add
			formatter := &output.JsonFormatter{}
			return formatter.Format(cfg, cmd.OutOrStdout(), nil)
		},
	}
}

func configSetCmd(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a single config value by dotted path, e.g. azure.location eastus2",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewFileManager()
			if err := manager.SetValue(opts.ConfigPath, args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], opts.ConfigPath)
			return nil
		},
	}
}
