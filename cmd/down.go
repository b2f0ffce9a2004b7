package cmd

import (
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/infra"
	"github.com/spf13/cobra"
)

func downCmd(opts *GlobalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Delete every starter resource group and the automation identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, manager, err := loadConfig(opts)
			if err != nil {
				return err
			}

			credential, err := newCredential()
			if err != nil {
				return err
			}

			entra, err := newEntraService(credential)
			if err != nil {
				return err
			}

			teardown := infra.NewTeardown(
				newAzureClient(credential), entra, newConsole(opts), cfg)
			if err := teardown.Run(cmd.Context(), force); err != nil {
				return err
			}

			// the teardown clears the identity fields on success
			return manager.Save(cfg, opts.ConfigPath)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the typed confirmation")

	return cmd
}
