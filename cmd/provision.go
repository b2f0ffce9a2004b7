package cmd

import (
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/infra"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/pipeline"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/spf13/cobra"
)

type provisionFlags struct {
	environment string
	dryRun      bool
}

func provisionCmd(opts *GlobalOptions) *cobra.Command {
	flags := &provisionFlags{}

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the Azure or Azure DevOps side of the starter footprint",
	}

	cmd.PersistentFlags().StringVarP(
		&flags.environment, "environment", "e", "all",
		"Environment to provision (dev, test, prod or all)")
	cmd.PersistentFlags().BoolVar(
		&flags.dryRun, "dry-run", false, "Report what would be created without creating anything")

	cmd.AddCommand(provisionAzureCmd(opts, flags))
	cmd.AddCommand(provisionDevOpsCmd(opts, flags))

	return cmd
}

func provisionAzureCmd(opts *GlobalOptions, flags *provisionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "azure",
		Short: "Create resource groups, AI Services accounts and RBAC per environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, manager, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServicePrincipal(); err != nil {
				return err
			}

			envNames, err := config.SelectEnvironments(flags.environment)
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

			runner := provision.NewRunner()
			runner.DryRun = flags.dryRun

			provisioner := infra.NewProvisioner(
				newAzureClient(credential), entra, runner, newConsole(opts), cfg)
			summary := provisioner.ProvisionEnvironments(cmd.Context(), envNames)

			if !flags.dryRun {
				// persist AI project endpoints discovered during the run
				if err := manager.Save(cfg, opts.ConfigPath); err != nil {
					return err
				}
			}

			return finishSummary(cmd, opts, summary)
		},
	}
}

func provisionDevOpsCmd(opts *GlobalOptions, flags *provisionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "devops",
		Short: "Create the repository, service connections, variable groups, environments and pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServicePrincipal(); err != nil {
				return err
			}

			envNames, err := config.SelectEnvironments(flags.environment)
			if err != nil {
				return err
			}

			connection, err := newDevOpsConnection(cmd, cfg)
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

			runner := provision.NewRunner()
			runner.DryRun = flags.dryRun

			provider := pipeline.NewProvider(connection, entra, runner, newConsole(opts), cfg)
			summary, err := provider.Provision(cmd.Context(), envNames)
			if err != nil {
				return err
			}

			return finishSummary(cmd, opts, summary)
		},
	}
}

// finishSummary renders the run summary in the requested format and converts
// recorded failures into the command error that drives the exit code.
func finishSummary(cmd *cobra.Command, opts *GlobalOptions, summary *provision.Summary) error {
	formatter, err := newFormatter(opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(summary, cmd.OutOrStdout(), nil); err != nil {
		return err
	}

	return summary.Err()
}
