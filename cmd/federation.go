package cmd

import (
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/pipeline"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/spf13/cobra"
)

func federationCmd(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "federation",
		Short: "Manage workload identity federation between Azure DevOps and Entra ID",
	}

	cmd.AddCommand(federationFixCmd(opts))

	return cmd
}

func federationFixCmd(opts *GlobalOptions) *cobra.Command {
	var environment string

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Recreate federated credentials from the live service connection issuer and subject",
		Long: `Recreate federated credentials from the live service connection issuer and subject.

Use this when pipeline logins fail with federation errors (AADSTS700213 and
friends), typically after a service connection was recreated or its identity
changed. The issuer and subject are read back from each service connection,
never guessed from naming conventions, and the credential on the app
registration is replaced wholesale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServicePrincipal(); err != nil {
				return err
			}

			envNames, err := config.SelectEnvironments(environment)
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

			provider := pipeline.NewProvider(
				connection, entra, provision.NewRunner(), newConsole(opts), cfg)
			summary, err := provider.FixFederation(cmd.Context(), envNames)
			if err != nil {
				return err
			}

			return finishSummary(cmd, opts, summary)
		},
	}

	cmd.Flags().StringVarP(
		&environment, "environment", "e", "all", "Environment to fix (dev, test, prod or all)")

	return cmd
}
