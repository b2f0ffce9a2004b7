package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
)

// servicePrincipalSettleDelay is the fixed wait after creating a new service
// principal before any dependent operation. A fresh principal is not
// immediately visible to ARM role assignment calls; a plain sleep is used
// instead of a readiness poll because there is nothing cheap to poll.
const servicePrincipalSettleDelay = 30 * time.Second

// IdentityManager ensures the automation app registration and service
// principal exist and records their identifiers in the deployment config.
type IdentityManager struct {
	entra   *entraid.Service
	console input.Console
	clock   clock.Clock
}

func NewIdentityManager(entra *entraid.Service, console input.Console) *IdentityManager {
	return &IdentityManager{entra: entra, console: console, clock: clock.New()}
}

// NewIdentityManagerWithClock is used by tests to avoid the settle delay.
func NewIdentityManagerWithClock(
	entra *entraid.Service, console input.Console, clk clock.Clock) *IdentityManager {
	return &IdentityManager{entra: entra, console: console, clock: clk}
}

// Setup finds or creates the app registration and service principal named in
// the config and writes the resulting identifiers back into cfg. The caller
// is responsible for saving the config file.
func (m *IdentityManager) Setup(ctx context.Context, cfg *config.DeploymentConfig) error {
	displayName := cfg.ServicePrincipal.DisplayName

	app, err := m.entra.FindApplication(ctx, displayName)
	if err != nil {
		return err
	}

	if app == nil {
		app, err = m.entra.CreateApplication(ctx, displayName)
		if err != nil {
			return err
		}
		m.console.Message(ctx, fmt.Sprintf(
			"Created app registration %s", output.WithHighLightFormat(displayName)))
	} else {
		m.console.Message(ctx, fmt.Sprintf(
			"App registration %s already exists", output.WithHighLightFormat(displayName)))
	}

	if app.AppId == nil || app.Id == nil {
		return fmt.Errorf("application %s is missing identifiers", displayName)
	}

	sp, err := m.entra.FindServicePrincipal(ctx, *app.AppId)
	if err != nil {
		return err
	}

	if sp == nil {
		sp, err = m.entra.CreateServicePrincipal(ctx, *app.AppId)
		if err != nil {
			return err
		}
		m.console.Message(ctx, "Created service principal, waiting for directory propagation")
		m.clock.Sleep(servicePrincipalSettleDelay)
	} else {
		m.console.Message(ctx, "Service principal already exists")
	}

	if sp.Id == nil {
		return fmt.Errorf("service principal for %s is missing an object id", displayName)
	}

	cfg.ServicePrincipal.AppId = *app.AppId
	cfg.ServicePrincipal.ObjectId = *sp.Id
	cfg.ServicePrincipal.TenantId = cfg.Azure.TenantId

	return nil
}
