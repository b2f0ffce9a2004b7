// Package infra provisions the Azure side of the starter footprint: one
// resource group and one AI Services account per environment, plus the RBAC
// grants for the automation identity.
package infra

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azapi"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
)

// Provisioner drives idempotent creation of the per environment Azure
// resources described by the deployment config.
type Provisioner struct {
	azure   *azapi.AzureClient
	entra   *entraid.Service
	runner  *provision.Runner
	console input.Console
	config  *config.DeploymentConfig
}

func NewProvisioner(
	azure *azapi.AzureClient,
	entra *entraid.Service,
	runner *provision.Runner,
	console input.Console,
	cfg *config.DeploymentConfig,
) *Provisioner {
	return &Provisioner{
		azure:   azure,
		entra:   entra,
		runner:  runner,
		console: console,
		config:  cfg,
	}
}

// resourceTags applied to everything the starter creates, so the footprint
// can be identified for teardown.
func (p *Provisioner) resourceTags(envName string) map[string]*string {
	return map[string]*string{
		"environment": convert.RefOf(envName),
		"project":     convert.RefOf("ai-foundry-starter"),
		"managedBy":   convert.RefOf("starter-cli"),
	}
}

// ProvisionEnvironments ensures the Azure resources for each named
// environment. Failures are captured per resource and never stop the run;
// the caller inspects the summary for the process exit code.
func (p *Provisioner) ProvisionEnvironments(ctx context.Context, envNames []string) *provision.Summary {
	summary := provision.NewSummary()

	for _, envName := range envNames {
		p.console.Message(ctx, output.WithHighLightFormat("\nEnvironment: %s", envName))

		envSummary := p.provisionEnvironment(ctx, envName)
		summary.Merge(envSummary)
	}

	return summary
}

func (p *Provisioner) provisionEnvironment(ctx context.Context, envName string) *provision.Summary {
	env := p.config.Environment(envName)
	subscriptionId := p.config.Azure.SubscriptionId
	location := p.config.Azure.Location
	tags := p.resourceTags(envName)

	steps := []provision.Step{
		{
			ResourceType: "resource group",
			Name:         env.ResourceGroup,
			Lookup: func(ctx context.Context) (bool, error) {
				return p.azure.ResourceGroupExists(ctx, subscriptionId, env.ResourceGroup)
			},
			Create: func(ctx context.Context) error {
				return p.azure.CreateOrUpdateResourceGroup(
					ctx, subscriptionId, env.ResourceGroup, location, tags)
			},
		},
		{
			ResourceType: "AI Services account",
			Name:         env.AIServicesAccount,
			Lookup: func(ctx context.Context) (bool, error) {
				account, err := p.azure.GetAIServicesAccount(
					ctx, subscriptionId, env.ResourceGroup, env.AIServicesAccount)
				if err != nil {
					return false, err
				}
				if account == nil {
					return false, nil
				}

				p.recordProjectEndpoint(env, account)
				return true, nil
			},
			Create: func(ctx context.Context) error {
				account, err := p.azure.CreateAIServicesAccount(
					ctx, subscriptionId, env.ResourceGroup, env.AIServicesAccount, location, tags)
				if err != nil {
					return err
				}

				p.recordProjectEndpoint(env, account)
				return nil
			},
		},
	}

	summary := p.runner.Run(ctx, steps, p.reportOutcome(ctx))

	for _, outcome := range p.ensureRoleAssignments(ctx, envName, env) {
		summary.Add(outcome)
		p.reportOutcome(ctx)(outcome)
	}

	return summary
}

// ensureRoleAssignments grants the automation identity Contributor on the
// environment resource group and Cognitive Services User on the account.
// Role assignments have no name lookup; the ARM 409 on re-creation is the
// existence signal.
func (p *Provisioner) ensureRoleAssignments(
	ctx context.Context,
	envName string,
	env *config.EnvironmentConfig,
) []provision.Outcome {
	subscriptionId := p.config.Azure.SubscriptionId
	principalId := p.config.ServicePrincipal.ObjectId

	resourceGroupScope := fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s", subscriptionId, env.ResourceGroup)
	accountScope := fmt.Sprintf(
		"%s/providers/Microsoft.CognitiveServices/accounts/%s",
		resourceGroupScope, env.AIServicesAccount)

	grants := []struct {
		name             string
		scope            string
		roleDefinitionId string
	}{
		{
			name:             fmt.Sprintf("Contributor on %s", env.ResourceGroup),
			scope:            resourceGroupScope,
			roleDefinitionId: entraid.RoleDefinitionContributor,
		},
		{
			name:             fmt.Sprintf("Cognitive Services User on %s", env.AIServicesAccount),
			scope:            accountScope,
			roleDefinitionId: entraid.RoleDefinitionCognitiveServicesUser,
		},
	}

	outcomes := make([]provision.Outcome, 0, len(grants))
	for _, grant := range grants {
		outcome := provision.Outcome{
			ResourceType: "role assignment",
			Name:         grant.name,
		}

		if p.runner.DryRun {
			outcome.Status = provision.StatusSkipped
			outcome.Message = "dry run, create skipped"
			outcomes = append(outcomes, outcome)
			continue
		}

		created, err := p.entra.EnsureRoleAssignment(
			ctx, subscriptionId, grant.scope, principalId, grant.roleDefinitionId)
		switch {
		case err != nil:
			outcome.Status = provision.StatusFailed
			outcome.Message = err.Error()
		case created:
			outcome.Status = provision.StatusCreated
		default:
			outcome.Status = provision.StatusSkipped
			outcome.Message = "already exists"
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// recordProjectEndpoint persists the account endpoint back into the in-memory
// config so the caller can save it for the pipeline variable groups.
func (p *Provisioner) recordProjectEndpoint(env *config.EnvironmentConfig, account *armcognitiveservices.Account) {
	if account != nil && account.Properties != nil && account.Properties.Endpoint != nil {
		env.AIProjectEndpoint = *account.Properties.Endpoint
	}
}

func (p *Provisioner) reportOutcome(ctx context.Context) func(provision.Outcome) {
	return func(outcome provision.Outcome) {
		p.console.Message(ctx, formatOutcome(outcome))
	}
}

func formatOutcome(outcome provision.Outcome) string {
	line := fmt.Sprintf("  %s %s", outcome.ResourceType, outcome.Name)
	switch outcome.Status {
	case provision.StatusCreated:
		return fmt.Sprintf("%s: %s", line, output.WithSuccessFormat("created"))
	case provision.StatusSkipped:
		return fmt.Sprintf("%s: %s", line, output.WithGrayFormat("skipped (%s)", outcome.Message))
	default:
		return fmt.Sprintf("%s: %s", line, output.WithErrorFormat("failed: %s", outcome.Message))
	}
}
