// Package pipeline provisions the Azure DevOps side of the starter: the
// repository, per environment service connections, variable groups and
// deployment environments, and the YAML pipeline definition. It also hosts
// the federated credential fixer.
package pipeline

import (
	"context"
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
)

// Provider drives idempotent creation of the Azure DevOps resources
// described by the deployment config.
type Provider struct {
	connection *azuredevops.Connection
	entra      *entraid.Service
	runner     *provision.Runner
	console    input.Console
	config     *config.DeploymentConfig
}

func NewProvider(
	connection *azuredevops.Connection,
	entra *entraid.Service,
	runner *provision.Runner,
	console input.Console,
	cfg *config.DeploymentConfig,
) *Provider {
	return &Provider{
		connection: connection,
		entra:      entra,
		runner:     runner,
		console:    console,
		config:     cfg,
	}
}

// Provision ensures the DevOps resources for the named environments. The
// project itself is a precondition, not something to create; a missing
// project aborts before any step runs.
func (p *Provider) Provision(ctx context.Context, envNames []string) (*provision.Summary, error) {
	project, err := azdo.GetProjectByName(ctx, p.connection, p.config.AzureDevOps.Project)
	if err != nil {
		return nil, err
	}

	projectId := project.Id.String()

	steps := []provision.Step{p.repositoryStep(projectId)}
	for _, envName := range envNames {
		steps = append(steps, p.environmentSteps(project, envName)...)
	}
	steps = append(steps, p.pipelineStep(projectId))

	return p.runner.Run(ctx, steps, p.reportOutcome(ctx)), nil
}

func (p *Provider) repositoryStep(projectId string) provision.Step {
	repoName := p.config.AzureDevOps.Repository

	return provision.Step{
		ResourceType: "repository",
		Name:         repoName,
		Lookup: func(ctx context.Context) (bool, error) {
			repo, err := azdo.FindRepository(ctx, p.connection, projectId, repoName)
			return repo != nil, err
		},
		Create: func(ctx context.Context) error {
			_, err := azdo.CreateRepository(ctx, p.connection, projectId, repoName)
			return err
		},
	}
}

func (p *Provider) environmentSteps(project *core.TeamProjectReference, envName string) []provision.Step {
	env := p.config.Environment(envName)
	projectId := project.Id.String()

	return []provision.Step{
		{
			ResourceType: "service connection",
			Name:         env.ServiceConnection,
			Lookup: func(ctx context.Context) (bool, error) {
				endpoint, err := azdo.FindServiceConnection(ctx, p.connection, projectId, env.ServiceConnection)
				return endpoint != nil, err
			},
			Create: func(ctx context.Context) error {
				return p.createServiceConnection(ctx, project, envName, env)
			},
		},
		{
			ResourceType: "variable group",
			Name:         env.VariableGroup,
			Lookup: func(ctx context.Context) (bool, error) {
				group, err := azdo.FindVariableGroup(ctx, p.connection, projectId, env.VariableGroup)
				return group != nil, err
			},
			Create: func(ctx context.Context) error {
				_, err := azdo.CreateVariableGroup(
					ctx, p.connection, *project.Id, *project.Name,
					env.VariableGroup,
					fmt.Sprintf("AI Foundry starter settings for %s", envName),
					p.variableGroupVariables(envName, env))
				return err
			},
		},
		{
			ResourceType: "environment",
			Name:         env.DevOpsEnvironment,
			Lookup: func(ctx context.Context) (bool, error) {
				instance, err := azdo.FindEnvironment(ctx, p.connection, projectId, env.DevOpsEnvironment)
				return instance != nil, err
			},
			Create: func(ctx context.Context) error {
				_, err := azdo.CreateEnvironment(
					ctx, p.connection, projectId, env.DevOpsEnvironment,
					fmt.Sprintf("AI Foundry starter %s deployment target", envName))
				return err
			},
		},
	}
}

// createServiceConnection creates the federated service connection and
// immediately registers the matching federated credential on the app
// registration, using the issuer and subject Azure DevOps generated for the
// new endpoint.
func (p *Provider) createServiceConnection(
	ctx context.Context,
	project *core.TeamProjectReference,
	envName string,
	env *config.EnvironmentConfig,
) error {
	endpoint, err := azdo.CreateFederatedServiceConnection(
		ctx, p.connection, *project.Id, *project.Name, azdo.FederatedConnectionSpec{
			Name:             env.ServiceConnection,
			ServicePrincipal: p.config.ServicePrincipal.AppId,
			TenantId:         p.config.Azure.TenantId,
			SubscriptionId:   p.config.Azure.SubscriptionId,
			SubscriptionName: fmt.Sprintf("starter subscription (%s)", envName),
		})
	if err != nil {
		return err
	}

	if err := p.applyFederation(ctx, env, endpoint); err != nil {
		return fmt.Errorf("registering federated credential: %w", err)
	}

	return nil
}

// variableGroupVariables returns the non-secret variables the deploy
// pipeline reads for one environment. The federated service connection means
// no credential material is ever stored here.
func (p *Provider) variableGroupVariables(envName string, env *config.EnvironmentConfig) map[string]string {
	return map[string]string{
		"AZURE_SUBSCRIPTION_ID": p.config.Azure.SubscriptionId,
		"AZURE_TENANT_ID":       p.config.Azure.TenantId,
		"AZURE_LOCATION":        p.config.Azure.Location,
		"ENVIRONMENT_NAME":      envName,
		"RESOURCE_GROUP":        env.ResourceGroup,
		"AI_SERVICES_ACCOUNT":   env.AIServicesAccount,
		"AI_PROJECT_ENDPOINT":   env.AIProjectEndpoint,
		"SERVICE_CONNECTION":    env.ServiceConnection,
	}
}

func (p *Provider) pipelineStep(projectId string) provision.Step {
	pipelineName := p.config.AzureDevOps.PipelineName

	return provision.Step{
		ResourceType: "pipeline",
		Name:         pipelineName,
		Lookup: func(ctx context.Context) (bool, error) {
			definition, err := azdo.FindPipelineDefinition(ctx, p.connection, projectId, pipelineName)
			return definition != nil, err
		},
		Create: func(ctx context.Context) error {
			_, err := azdo.CreatePipelineDefinition(ctx, p.connection, projectId, azdo.PipelineDefinitionSpec{
				Name:           pipelineName,
				RepositoryName: p.config.AzureDevOps.Repository,
				YamlPath:       p.config.AzureDevOps.PipelineYamlPath,
				Variables: map[string]string{
					"AZURE_SUBSCRIPTION_ID": p.config.Azure.SubscriptionId,
					"AZURE_TENANT_ID":       p.config.Azure.TenantId,
				},
			})
			return err
		},
	}
}

func (p *Provider) reportOutcome(ctx context.Context) func(provision.Outcome) {
	return func(outcome provision.Outcome) {
		line := fmt.Sprintf("  %s %s", outcome.ResourceType, outcome.Name)
		switch outcome.Status {
		case provision.StatusCreated:
			p.console.Message(ctx, fmt.Sprintf("%s: %s", line, output.WithSuccessFormat("created")))
		case provision.StatusSkipped:
			p.console.Message(ctx, fmt.Sprintf(
				"%s: %s", line, output.WithGrayFormat("skipped (%s)", outcome.Message)))
		default:
			p.console.Message(ctx, fmt.Sprintf(
				"%s: %s", line, output.WithErrorFormat("failed: %s", outcome.Message)))
		}
	}
}
