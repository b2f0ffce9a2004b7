package cmd

import (
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/infra"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/spf13/cobra"
)

func identityCmd(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the automation identity used by pipelines and RBAC",
	}

	cmd.AddCommand(identitySetupCmd(opts))

	return cmd
}

func identitySetupCmd(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the app registration and service principal and record them in the config",
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

			console := newConsole(opts)
			identity := infra.NewIdentityManager(entra, console)
			if err := identity.Setup(cmd.Context(), cfg); err != nil {
				return err
			}

			if err := manager.Save(cfg, opts.ConfigPath); err != nil {
				return err
			}

			console.Message(cmd.Context(), fmt.Sprintf(
				"\nIdentity %s recorded in %s",
				output.WithHighLightFormat(cfg.ServicePrincipal.AppId),
				opts.ConfigPath))

			return nil
		},
	}
}
