// Package cmd wires the starter CLI commands.
package cmd

import (
	"io"
	"log"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/spf13/cobra"
)

// GlobalOptions carries the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath         string
	OutputFormat       string
	NoPrompt           bool
	EnableDebugLogging bool
}

func newRootCmd() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "starter",
		Short: "starter - provision the AI Foundry starter footprint on Azure and Azure DevOps",
		Long: `starter - provision the AI Foundry starter footprint on Azure and Azure DevOps

The usual order of operations for a fresh subscription is:

	$ starter identity setup
	$ starter provision azure
	$ starter provision devops
	$ starter pipeline watch

Resource creation is idempotent: anything that already exists is skipped and
re-running after a partial failure retries only what is missing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.LstdFlags | log.Lshortfile)

			if !opts.EnableDebugLogging {
				log.SetOutput(io.Discard)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.PersistentFlags().StringVarP(
		&opts.ConfigPath, "config", "c", config.DefaultFileName, "Path to the deployment config file")
	cmd.PersistentFlags().StringVarP(
		&opts.OutputFormat, "output", "o", string(output.TextFormat), "Output format (text or json)")
	cmd.PersistentFlags().BoolVar(
		&opts.NoPrompt, "no-prompt", false,
		"Accept default value instead of prompting, or fail if there is no default")
	cmd.PersistentFlags().BoolVar(
		&opts.EnableDebugLogging, "debug", false, "Enables debug/diagnostic logging")

	cmd.AddCommand(provisionCmd(opts))
	cmd.AddCommand(identityCmd(opts))
	cmd.AddCommand(federationCmd(opts))
	cmd.AddCommand(pipelineCmd(opts))
	cmd.AddCommand(downCmd(opts))
	cmd.AddCommand(configCmd(opts))

	return cmd
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
