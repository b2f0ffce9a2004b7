package graphsdk_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/graphsdk"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/test/mocks"
	"github.com/stretchr/testify/require"
)

var federatedCredentials = []graphsdk.FederatedIdentityCredential{
	{
		Id:          convert.RefOf("cred-01"),
		Name:        "sc-ai-foundry-dev",
		Issuer:      "https://vstoken.dev.azure.com/org-id",
		Subject:     "sc://contoso/ai-foundry/sc-ai-foundry-dev",
		Description: convert.RefOf("dev service connection"),
		Audiences:   []string{"api://AzureADTokenExchange"},
	},
	{
		Id:        convert.RefOf("cred-02"),
		Name:      "sc-ai-foundry-test",
		Issuer:    "https://vstoken.dev.azure.com/org-id",
		Subject:   "sc://contoso/ai-foundry/sc-ai-foundry-test",
		Audiences: []string{"api://AzureADTokenExchange"},
	},
}

func newGraphClient(t *testing.T, transport *mocks.MockTransport) *graphsdk.GraphClient {
	t.Helper()

	client, err := graphsdk.NewGraphClient(&mocks.MockCredential{}, mocks.ClientOptions(transport))
	require.NoError(t, err)

	return client
}

func TestGetFederatedCredentialList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		transport := mocks.NewMockTransport()
		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials")
		}).Respond(http.StatusOK, graphsdk.FederatedIdentityCredentialListResponse{Value: federatedCredentials})

		client := newGraphClient(t, transport)
		res, err := client.
			ApplicationById("app-object-id").
			FederatedIdentityCredentials().
			Get(context.Background())

		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, federatedCredentials, res.Value)
	})

	t.Run("Error", func(t *testing.T) {
		transport := mocks.NewMockTransport()
		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials")
		}).Respond(http.StatusUnauthorized, nil)

		client := newGraphClient(t, transport)
		res, err := client.
			ApplicationById("app-object-id").
			FederatedIdentityCredentials().
			Get(context.Background())

		require.Error(t, err)
		require.Nil(t, res)
	})
}

func TestCreateFederatedCredential(t *testing.T) {
	expected := federatedCredentials[0]

	transport := mocks.NewMockTransport()
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials")
	}).Respond(http.StatusCreated, expected)

	client := newGraphClient(t, transport)
	actual, err := client.
		ApplicationById("app-object-id").
		FederatedIdentityCredentials().
		Post(context.Background(), &expected)

	require.NoError(t, err)
	require.Equal(t, expected, *actual)
}

func TestDeleteFederatedCredential(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		transport := mocks.NewMockTransport()
		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodDelete && strings.HasSuffix(req.URL.Path, "/federatedIdentityCredentials/cred-01")
		}).Respond(http.StatusNoContent, nil)

		client := newGraphClient(t, transport)
		err := client.
			ApplicationById("app-object-id").
			FederatedIdentityCredentialById("cred-01").
			Delete(context.Background())

		require.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		transport := mocks.NewMockTransport()
		transport.When(func(req *http.Request) bool {
			return req.Method == http.MethodDelete
		}).Respond(http.StatusNotFound, nil)

		client := newGraphClient(t, transport)
		err := client.
			ApplicationById("app-object-id").
			FederatedIdentityCredentialById("missing").
			Delete(context.Background())

		require.Error(t, err)
	})
}
