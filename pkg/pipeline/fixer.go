package pipeline

import (
	"context"
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/graphsdk"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/serviceendpoint"
)

// FixFederation repairs the federated credentials for the named
// environments. For each environment it re-reads the issuer and subject from
// the live service connection and recreates the matching credential on the
// app registration. A broken environment is recorded and the remaining
// environments are still processed.
func (p *Provider) FixFederation(ctx context.Context, envNames []string) (*provision.Summary, error) {
	project, err := azdo.GetProjectByName(ctx, p.connection, p.config.AzureDevOps.Project)
	if err != nil {
		return nil, err
	}

	projectId := project.Id.String()
	summary := provision.NewSummary()
	report := p.reportOutcome(ctx)

	for _, envName := range envNames {
		env := p.config.Environment(envName)
		outcome := provision.Outcome{
			ResourceType: "federated credential",
			Name:         env.ServiceConnection,
		}

		if err := p.fixEnvironment(ctx, projectId, env); err != nil {
			outcome.Status = provision.StatusFailed
			outcome.Message = err.Error()
		} else {
			outcome.Status = provision.StatusCreated
			outcome.Message = "recreated from service connection"
		}

		summary.Add(outcome)
		report(outcome)
	}

	return summary, nil
}

func (p *Provider) fixEnvironment(
	ctx context.Context,
	projectId string,
	env *config.EnvironmentConfig,
) error {
	endpoint, err := azdo.FindServiceConnection(ctx, p.connection, projectId, env.ServiceConnection)
	if err != nil {
		return err
	}
	if endpoint == nil {
		return fmt.Errorf("service connection %s not found", env.ServiceConnection)
	}

	// Re-read the endpoint so the issuer and subject reflect the service's
	// current state, not a cached listing.
	details, err := azdo.GetServiceConnectionDetails(ctx, p.connection, projectId, *endpoint.Id)
	if err != nil {
		return err
	}

	return p.applyFederation(ctx, env, details)
}

// applyFederation copies the issuer and subject from the service connection
// into a federated credential on the app registration. Both values are
// treated as opaque: they are never derived from organization or project
// naming, only read back from Azure DevOps. The credential is deleted and
// recreated, never patched, because issuer changes on an existing credential
// are rejected by the directory.
func (p *Provider) applyFederation(
	ctx context.Context,
	env *config.EnvironmentConfig,
	endpoint *serviceendpoint.ServiceEndpoint,
) error {
	issuer, subject, err := azdo.FederationParameters(endpoint)
	if err != nil {
		return err
	}

	app, err := p.entra.FindApplicationByAppId(ctx, p.config.ServicePrincipal.AppId)
	if err != nil {
		return err
	}
	if app == nil || app.Id == nil {
		return fmt.Errorf("application with appId %s not found", p.config.ServicePrincipal.AppId)
	}

	_, err = p.entra.ApplyFederatedCredential(ctx, *app.Id, &graphsdk.FederatedIdentityCredential{
		Name:        env.ServiceConnection,
		Issuer:      issuer,
		Subject:     subject,
		Description: convert.RefOf("AI Foundry starter pipeline federation"),
	})

	return err
}
