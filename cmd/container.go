package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azapi"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/spf13/cobra"
)

// loadConfig loads, defaults and validates the deployment config named by the
// global --config flag.
func loadConfig(opts *GlobalOptions) (*config.DeploymentConfig, *config.FileManager, error) {
	manager := config.NewFileManager()

	cfg, err := manager.Load(opts.ConfigPath)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, nil, fmt.Errorf(
				"config file %s not found, copy %s from the template and fill it in",
				opts.ConfigPath, output.WithBackticks(config.DefaultFileName))
		}
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s:\n%w", opts.ConfigPath, err)
	}

	return cfg, manager, nil
}

func newConsole(opts *GlobalOptions) input.Console {
	return input.NewConsole(opts.NoPrompt, nil)
}

func newFormatter(opts *GlobalOptions) (output.Formatter, error) {
	return output.NewFormatter(opts.OutputFormat)
}

// newCredential returns the ambient Azure credential (CLI login, managed
// identity, environment variables).
func newCredential() (azcore.TokenCredential, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("obtaining Azure credential: %w", err)
	}

	return credential, nil
}

func newAzureClient(credential azcore.TokenCredential) *azapi.AzureClient {
	return azapi.NewAzureClient(credential, nil)
}

func newEntraService(credential azcore.TokenCredential) (*entraid.Service, error) {
	return entraid.NewService(credential, nil, nil)
}

// newDevOpsConnection builds the PAT authenticated Azure DevOps connection
// for the configured organization.
func newDevOpsConnection(cmd *cobra.Command, cfg *config.DeploymentConfig) (*azuredevops.Connection, error) {
	pat := os.Getenv(azdo.AzDoPatName)
	if pat == "" {
		return nil, fmt.Errorf(
			"no Azure DevOps credential, set the %s environment variable to a personal access token",
			output.WithHighLightFormat(azdo.AzDoPatName))
	}

	return azdo.GetConnection(cmd.Context(), cfg.AzureDevOps.Organization, pat)
}
