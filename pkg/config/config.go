// Package config provides the typed deployment configuration consumed by
// every starter command.
//
// The configuration lives in a single JSON document (starter-config.json by
// default) that is the source of truth for resource naming, environment
// endpoints and the automation identity. It is loaded once per process
// invocation and passed explicitly into each component.
package config

import (
	"fmt"

	"dario.cat/mergo"
	"go.uber.org/multierr"
)

const (
	// SchemaVersion is the config document version written on save.
	SchemaVersion = "2.0"

	// DefaultFileName is the config file name expected at the repository root.
	DefaultFileName = "starter-config.json"
)

// EnvironmentNames is the fixed set of deployment environments. The config
// schema intentionally has no dynamic environment list.
var EnvironmentNames = []string{"dev", "test", "prod"}

type Metadata struct {
	SchemaVersion string `json:"schemaVersion,omitempty"`
	LastModified  string `json:"lastModified,omitempty"`
}

type AzureDevOpsConfig struct {
	// Organization is the Azure DevOps organization name (not the full URL).
	Organization string `json:"organization,omitempty"`
	Project      string `json:"project,omitempty"`
	Repository   string `json:"repository,omitempty"`
	PipelineName string `json:"pipelineName,omitempty"`
	// PipelineYamlPath is the repository relative path to the pipeline definition.
	PipelineYamlPath string `json:"pipelineYamlPath,omitempty"`
}

// EnvironmentConfig holds the environment scoped resource names and endpoints.
type EnvironmentConfig struct {
	AIProjectEndpoint string `json:"aiProjectEndpoint,omitempty"`
	ResourceGroup     string `json:"resourceGroup,omitempty"`
	AIServicesAccount string `json:"aiServicesAccount,omitempty"`
	VariableGroup     string `json:"variableGroup,omitempty"`
	DevOpsEnvironment string `json:"devopsEnvironment,omitempty"`
	ServiceConnection string `json:"serviceConnection,omitempty"`
}

// EnvironmentSet is the fixed dev/test/prod partition of the config.
type EnvironmentSet struct {
	Dev  EnvironmentConfig `json:"dev"`
	Test EnvironmentConfig `json:"test"`
	Prod EnvironmentConfig `json:"prod"`
}

type AzureConfig struct {
	SubscriptionId    string         `json:"subscriptionId,omitempty"`
	TenantId          string         `json:"tenantId,omitempty"`
	Location          string         `json:"location,omitempty"`
	ResourceGroupBase string         `json:"resourceGroupBase,omitempty"`
	AIServicesBase    string         `json:"aiServicesBase,omitempty"`
	Environments      EnvironmentSet `json:"environments"`
}

// ServicePrincipalConfig is the automation identity created by
// `starter identity setup` and read by every subsequent command that attaches
// RBAC or federated credentials.
type ServicePrincipalConfig struct {
	DisplayName string `json:"displayName,omitempty"`
	AppId       string `json:"appId,omitempty"`
	ObjectId    string `json:"objectId,omitempty"`
	TenantId    string `json:"tenantId,omitempty"`
}

// DeploymentConfig is the top level configuration record. Exactly one exists
// per deployment.
type DeploymentConfig struct {
	Metadata         Metadata               `json:"metadata"`
	AzureDevOps      AzureDevOpsConfig      `json:"azureDevOps"`
	Azure            AzureConfig            `json:"azure"`
	ServicePrincipal ServicePrincipalConfig `json:"servicePrincipal"`
}

func defaultConfig() DeploymentConfig {
	return DeploymentConfig{
		Metadata: Metadata{
			SchemaVersion: SchemaVersion,
		},
		AzureDevOps: AzureDevOpsConfig{
			Repository:       "ai-foundry-starter",
			PipelineName:     "AI Foundry Starter Deploy",
			PipelineYamlPath: ".azdo/pipelines/deploy.yml",
		},
		Azure: AzureConfig{
			Location:          "eastus2",
			ResourceGroupBase: "rg-ai-foundry-starter",
			AIServicesBase:    "aif-starter",
		},
		ServicePrincipal: ServicePrincipalConfig{
			DisplayName: "ai-foundry-starter-automation",
		},
	}
}

// ApplyDefaults fills unset fields with defaults and derives environment
// scoped resource names from the configured base names.
func (c *DeploymentConfig) ApplyDefaults() error {
	defaults := defaultConfig()
	if err := mergo.Merge(c, defaults); err != nil {
		return fmt.Errorf("merging config defaults: %w", err)
	}

	for _, name := range EnvironmentNames {
		env := c.Environment(name)
		if env.ResourceGroup == "" {
			env.ResourceGroup = fmt.Sprintf("%s-%s", c.Azure.ResourceGroupBase, name)
		}
		if env.AIServicesAccount == "" {
			env.AIServicesAccount = fmt.Sprintf("%s-%s", c.Azure.AIServicesBase, name)
		}
		if env.VariableGroup == "" {
			env.VariableGroup = fmt.Sprintf("vg-ai-foundry-%s", name)
		}
		if env.DevOpsEnvironment == "" {
			env.DevOpsEnvironment = fmt.Sprintf("ai-foundry-%s", name)
		}
		if env.ServiceConnection == "" {
			env.ServiceConnection = fmt.Sprintf("sc-ai-foundry-%s", name)
		}
	}

	return nil
}

// Environment returns the environment record for one of the fixed environment
// names. Unknown names return nil.
func (c *DeploymentConfig) Environment(name string) *EnvironmentConfig {
	switch name {
	case "dev":
		return &c.Azure.Environments.Dev
	case "test":
		return &c.Azure.Environments.Test
	case "prod":
		return &c.Azure.Environments.Prod
	default:
		return nil
	}
}

// SelectEnvironments resolves the --environment flag value into the list of
// environment names to operate on.
func SelectEnvironments(flagValue string) ([]string, error) {
	if flagValue == "" || flagValue == "all" {
		return EnvironmentNames, nil
	}

	for _, name := range EnvironmentNames {
		if name == flagValue {
			return []string{name}, nil
		}
	}

	return nil, fmt.Errorf("invalid environment '%s', expected one of dev, test, prod, all", flagValue)
}

// Validate reports every missing required field at once.
func (c *DeploymentConfig) Validate() error {
	var err error

	if c.Azure.SubscriptionId == "" {
		err = multierr.Append(err, fmt.Errorf("azure.subscriptionId is required"))
	}
	if c.Azure.TenantId == "" {
		err = multierr.Append(err, fmt.Errorf("azure.tenantId is required"))
	}
	if c.Azure.Location == "" {
		err = multierr.Append(err, fmt.Errorf("azure.location is required"))
	}
	if c.AzureDevOps.Organization == "" {
		err = multierr.Append(err, fmt.Errorf("azureDevOps.organization is required"))
	}
	if c.AzureDevOps.Project == "" {
		err = multierr.Append(err, fmt.Errorf("azureDevOps.project is required"))
	}

	return err
}

// ValidateServicePrincipal reports whether the automation identity has been
// provisioned. Commands that attach RBAC or federated credentials require it.
func (c *DeploymentConfig) ValidateServicePrincipal() error {
	if c.ServicePrincipal.AppId == "" || c.ServicePrincipal.ObjectId == "" {
		return fmt.Errorf(
			"no service principal configured, run %s first", "`starter identity setup`")
	}

	return nil
}
