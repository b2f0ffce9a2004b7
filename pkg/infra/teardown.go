package infra

import (
	"context"
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azapi"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
)

// Teardown removes the starter footprint: every resource group whose name
// starts with the configured base, and the automation identity.
type Teardown struct {
	azure   *azapi.AzureClient
	entra   *entraid.Service
	console input.Console
	config  *config.DeploymentConfig
}

func NewTeardown(
	azure *azapi.AzureClient,
	entra *entraid.Service,
	console input.Console,
	cfg *config.DeploymentConfig,
) *Teardown {
	return &Teardown{azure: azure, entra: entra, console: console, config: cfg}
}

// Run enumerates the resource groups by name prefix, asks for a typed
// confirmation of the base name (skipped with force), then issues the
// deletions. Resource group deletes are requested without waiting on the
// poller; ARM completes them in the background long after this process
// exits. The identity delete is synchronous.
func (t *Teardown) Run(ctx context.Context, force bool) error {
	subscriptionId := t.config.Azure.SubscriptionId
	prefix := t.config.Azure.ResourceGroupBase

	groups, err := t.azure.ListResourceGroups(ctx, subscriptionId, prefix)
	if err != nil {
		return fmt.Errorf("listing resource groups: %w", err)
	}

	if len(groups) == 0 && t.config.ServicePrincipal.AppId == "" {
		t.console.Message(ctx, "Nothing to delete.")
		return nil
	}

	t.console.Message(ctx, "The following will be deleted:")
	for _, group := range groups {
		t.console.Message(ctx, fmt.Sprintf(
			"  resource group %s", output.WithErrorFormat("%s", group)))
	}
	if t.config.ServicePrincipal.AppId != "" {
		t.console.Message(ctx, fmt.Sprintf(
			"  app registration %s", output.WithErrorFormat("%s", t.config.ServicePrincipal.DisplayName)))
	}

	if !force {
		confirmed, err := t.confirm(ctx, prefix)
		if err != nil {
			return err
		}
		if !confirmed {
			t.console.Message(ctx, "Teardown cancelled.")
			return nil
		}
	}

	for _, group := range groups {
		if err := t.azure.DeleteResourceGroup(ctx, subscriptionId, group); err != nil {
			return fmt.Errorf("deleting resource group %s: %w", group, err)
		}
		t.console.Message(ctx, fmt.Sprintf("Delete requested for resource group %s", group))
	}

	if t.config.ServicePrincipal.AppId != "" {
		if err := t.deleteIdentity(ctx); err != nil {
			return err
		}
	}

	return nil
}

// confirm requires the operator to type the resource group base name back.
// A yes/no prompt is too easy to answer on autopilot for a subscription
// scoped delete.
func (t *Teardown) confirm(ctx context.Context, phrase string) (bool, error) {
	t.console.Message(ctx, fmt.Sprintf(
		"\nType %s to confirm deletion.", output.WithBackticks(phrase)))

	answer, err := t.console.Prompt(ctx, input.ConsoleOptions{
		Message: "Confirmation:",
	})
	if err != nil {
		return false, fmt.Errorf("asking for confirmation: %w", err)
	}

	return answer == phrase, nil
}

func (t *Teardown) deleteIdentity(ctx context.Context) error {
	app, err := t.entra.FindApplicationByAppId(ctx, t.config.ServicePrincipal.AppId)
	if err != nil {
		return err
	}
	if app == nil || app.Id == nil {
		t.console.Message(ctx, "App registration already deleted.")
		return nil
	}

	if err := t.entra.DeleteApplication(ctx, *app.Id); err != nil {
		return err
	}

	t.console.Message(ctx, fmt.Sprintf(
		"Deleted app registration %s", t.config.ServicePrincipal.DisplayName))

	t.config.ServicePrincipal.AppId = ""
	t.config.ServicePrincipal.ObjectId = ""

	return nil
}
