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

var application = graphsdk.Application{
	Id:          convert.RefOf("app-object-id"),
	AppId:       convert.RefOf("app-client-id"),
	DisplayName: "ai-foundry-starter-automation",
	Description: convert.RefOf("starter automation identity"),
}

func TestGetApplicationList(t *testing.T) {
	transport := mocks.NewMockTransport()
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			strings.HasSuffix(req.URL.Path, "/applications") &&
			req.URL.Query().Get("$filter") != ""
	}).Respond(http.StatusOK, graphsdk.ApplicationListResponse{Value: []graphsdk.Application{application}})

	client := newGraphClient(t, transport)
	res, err := client.
		Applications().
		Filter("displayName eq 'ai-foundry-starter-automation'").
		Get(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Value, 1)
	require.Equal(t, application, res.Value[0])
}

func TestCreateApplication(t *testing.T) {
	transport := mocks.NewMockTransport()
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/applications")
	}).Respond(http.StatusCreated, application)

	client := newGraphClient(t, transport)
	created, err := client.Applications().Post(context.Background(), &graphsdk.Application{
		DisplayName: application.DisplayName,
	})

	require.NoError(t, err)
	require.Equal(t, application, *created)
}

func TestDeleteApplication(t *testing.T) {
	transport := mocks.NewMockTransport()
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodDelete && strings.HasSuffix(req.URL.Path, "/applications/app-object-id")
	}).Respond(http.StatusNoContent, nil)

	client := newGraphClient(t, transport)
	require.NoError(t, client.ApplicationById("app-object-id").Delete(context.Background()))
}

func TestCreateServicePrincipal(t *testing.T) {
	expected := graphsdk.ServicePrincipal{
		Id:          convert.RefOf("sp-object-id"),
		AppId:       "app-client-id",
		DisplayName: "ai-foundry-starter-automation",
	}

	transport := mocks.NewMockTransport()
	transport.When(func(req *http.Request) bool {
		return req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/servicePrincipals")
	}).Respond(http.StatusCreated, expected)

	client := newGraphClient(t, transport)
	created, err := client.ServicePrincipals().Post(context.Background(), &graphsdk.ServicePrincipal{
		AppId: "app-client-id",
	})

	require.NoError(t, err)
	require.Equal(t, expected, *created)
}
