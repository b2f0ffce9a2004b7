package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/config"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/entraid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/input"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/test/mocks"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/serviceendpoint"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.DeploymentConfig {
	cfg := &config.DeploymentConfig{}
	cfg.Azure.SubscriptionId = "00000000-0000-0000-0000-000000000000"
	cfg.Azure.TenantId = "11111111-1111-1111-1111-111111111111"
	cfg.AzureDevOps.Organization = "contoso"
	cfg.AzureDevOps.Project = "ai-foundry"
	cfg.AzureDevOps.Repository = "ai-foundry-starter"
	cfg.ServicePrincipal.AppId = "22222222-2222-2222-2222-222222222222"
	cfg.ServicePrincipal.ObjectId = "33333333-3333-3333-3333-333333333333"
	require.NoError(t, cfg.ApplyDefaults())
	return cfg
}

func Test_applyFederation(t *testing.T) {
	cfg := testConfig(t)
	env := cfg.Environment("dev")

	const issuer = "https://vstoken.dev.azure.com/44444444-5555-6666-7777-888888888888"
	const subject = "sc://contoso/ai-foundry/sc-ai-foundry-dev"

	endpoint := &serviceendpoint.ServiceEndpoint{
		Name: convert.RefOf(env.ServiceConnection),
		Authorization: &serviceendpoint.EndpointAuthorization{
			Parameters: &map[string]string{
				azdo.FederationIssuerParameter:  issuer,
				azdo.FederationSubjectParameter: subject,
			},
		},
	}

	transport := mocks.NewMockTransport()

	// resolve the app registration behind the configured client id
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/applications")
	}).Respond(http.StatusOK, map[string]any{
		"value": []map[string]any{{
			"id":    "app-object-id",
			"appId": cfg.ServicePrincipal.AppId,
		}},
	})

	// one stale credential with the same logical name already exists
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			strings.HasSuffix(req.URL.Path, "/applications/app-object-id/federatedIdentityCredentials")
	}).Respond(http.StatusOK, map[string]any{
		"value": []map[string]any{{
			"id":      "stale-credential-id",
			"name":    env.ServiceConnection,
			"issuer":  "https://vstoken.dev.azure.com/deadbeef",
			"subject": subject,
		}},
	})

	deleted := false
	transport.When(func(req *http.Request) bool {
		if req.Method == http.MethodDelete &&
			strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials/stale-credential-id") {
			deleted = true
			return true
		}
		return false
	}).Respond(http.StatusNoContent, nil)

	var posted map[string]any
	transport.When(func(req *http.Request) bool {
		if req.Method != http.MethodPost ||
			!strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials") {
			return false
		}
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(body))
		require.NoError(t, json.Unmarshal(body, &posted))
		return true
	}).Respond(http.StatusCreated, map[string]any{
		"id":      "new-credential-id",
		"name":    env.ServiceConnection,
		"issuer":  issuer,
		"subject": subject,
	})

	entra, err := entraid.NewService(&mocks.MockCredential{}, mocks.ClientOptions(transport), nil)
	require.NoError(t, err)

	provider := NewProvider(nil, entra, provision.NewRunner(), input.NewConsole(true, &bytes.Buffer{}), cfg)
	require.NoError(t, provider.applyFederation(context.Background(), env, endpoint))

	require.True(t, deleted)
	// the recreated credential carries the fetched values verbatim
	require.Equal(t, issuer, posted["issuer"])
	require.Equal(t, subject, posted["subject"])
	require.Equal(t, env.ServiceConnection, posted["name"])
}

func Test_variableGroupVariables(t *testing.T) {
	cfg := testConfig(t)
	cfg.Azure.Environments.Dev.AIProjectEndpoint = "https://aif-starter-dev.cognitiveservices.azure.com/"

	provider := NewProvider(nil, nil, provision.NewRunner(), input.NewConsole(true, &bytes.Buffer{}), cfg)
	variables := provider.variableGroupVariables("dev", cfg.Environment("dev"))

	require.Equal(t, cfg.Azure.SubscriptionId, variables["AZURE_SUBSCRIPTION_ID"])
	require.Equal(t, "rg-ai-foundry-starter-dev", variables["RESOURCE_GROUP"])
	require.Equal(t, "sc-ai-foundry-dev", variables["SERVICE_CONNECTION"])
	require.Equal(t,
		"https://aif-starter-dev.cognitiveservices.azure.com/", variables["AI_PROJECT_ENDPOINT"])

	// federation means no secret material belongs in the group
	for key := range variables {
		require.NotContains(t, strings.ToLower(key), "secret")
		require.NotContains(t, strings.ToLower(key), "password")
	}
}
