package infra

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azapi"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/test/mocks"
	"github.com/stretchr/testify/require"
)

const subscriptionId = "00000000-0000-0000-0000-000000000000"

func testConfig(t *testing.T) *config.DeploymentConfig {
	cfg := &config.DeploymentConfig{}
	cfg.Azure.SubscriptionId = subscriptionId
	cfg.Azure.TenantId = "11111111-1111-1111-1111-111111111111"
	cfg.ServicePrincipal.AppId = "22222222-2222-2222-2222-222222222222"
	cfg.ServicePrincipal.ObjectId = "33333333-3333-3333-3333-333333333333"
	require.NoError(t, cfg.ApplyDefaults())
	return cfg
}

func newTestProvisioner(
	t *testing.T, transport *mocks.MockTransport, cfg *config.DeploymentConfig, dryRun bool,
) *Provisioner {
	armOptions := &arm.ClientOptions{ClientOptions: *mocks.ClientOptions(transport)}
	azure := azapi.NewAzureClient(&mocks.MockCredential{}, armOptions)

	entra, err := entraid.NewService(&mocks.MockCredential{}, mocks.ClientOptions(transport), armOptions)
	require.NoError(t, err)

	runner := provision.NewRunner()
	runner.DryRun = dryRun

	console := input.NewConsole(true, &bytes.Buffer{})
	return NewProvisioner(azure, entra, runner, console, cfg)
}

func TestProvisionEnvironments(t *testing.T) {
	t.Run("everything exists", func(t *testing.T) {
		cfg := testConfig(t)
		transport := mocks.NewMockTransport()

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodHead &&
				strings.Contains(req.URL.Path, "/resourcegroups/")
		}).Respond(http.StatusNoContent, nil)

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodGet &&
				strings.Contains(req.URL.Path, "/providers/Microsoft.CognitiveServices/accounts/")
		}).Respond(http.StatusOK, map[string]any{
			"name": "aif-starter-dev",
			"properties": map[string]any{
				"endpoint": "https://aif-starter-dev.cognitiveservices.azure.com/",
			},
		})

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodPut &&
				strings.Contains(req.URL.Path, "/providers/Microsoft.Authorization/roleAssignments/")
		}).Respond(http.StatusCreated, map[string]any{})

		provisioner := newTestProvisioner(t, transport, cfg, false)
		summary := provisioner.ProvisionEnvironments(context.Background(), []string{"dev"})

		require.Equal(t, 2, summary.Skipped)
		require.Equal(t, 2, summary.Created) // the two role assignments
		require.Equal(t, 0, summary.Failed)
		require.Equal(t, 0, summary.ExitCode())

		// the endpoint read during lookup is recorded for the variable groups
		require.Equal(t,
			"https://aif-starter-dev.cognitiveservices.azure.com/",
			cfg.Azure.Environments.Dev.AIProjectEndpoint)
	})

	t.Run("dry run performs lookups only", func(t *testing.T) {
		cfg := testConfig(t)
		transport := mocks.NewMockTransport()

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodHead
		}).Respond(http.StatusNotFound, nil)

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodGet &&
				strings.Contains(req.URL.Path, "/providers/Microsoft.CognitiveServices/accounts/")
		}).Respond(http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": "ResourceNotFound"},
		})

		// no create or role assignment expectations: any write request panics

		provisioner := newTestProvisioner(t, transport, cfg, true)
		summary := provisioner.ProvisionEnvironments(context.Background(), []string{"dev"})

		require.Equal(t, 4, summary.Skipped)
		require.Equal(t, 0, summary.Created)
		require.Equal(t, 0, summary.Failed)
	})

	t.Run("account failure does not stop role assignments", func(t *testing.T) {
		cfg := testConfig(t)
		transport := mocks.NewMockTransport()

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodHead
		}).Respond(http.StatusNoContent, nil)

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodGet &&
				strings.Contains(req.URL.Path, "/providers/Microsoft.CognitiveServices/accounts/")
		}).Respond(http.StatusForbidden, map[string]any{
			"error": map[string]any{"code": "AuthorizationFailed"},
		})

		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodPut &&
				strings.Contains(req.URL.Path, "/providers/Microsoft.Authorization/roleAssignments/")
		}).Respond(http.StatusCreated, map[string]any{})

		provisioner := newTestProvisioner(t, transport, cfg, false)
		summary := provisioner.ProvisionEnvironments(context.Background(), []string{"dev"})

		require.Equal(t, 1, summary.Failed)
		require.Equal(t, 2, summary.Created)
		require.Equal(t, 1, summary.ExitCode())
	})
}
