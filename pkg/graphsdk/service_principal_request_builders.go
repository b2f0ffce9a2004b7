package graphsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/httputil"
)

type ServicePrincipalListRequestBuilder struct {
	*EntityListRequestBuilder[ServicePrincipalListRequestBuilder]
}

func newServicePrincipalListRequestBuilder(client *GraphClient) *ServicePrincipalListRequestBuilder {
	builder := &ServicePrincipalListRequestBuilder{}
	builder.EntityListRequestBuilder = newEntityListRequestBuilder(builder, client)

	return builder
}

// Gets a list of Microsoft Graph Service Principals that the current logged in user has access to.
func (c *ServicePrincipalListRequestBuilder) Get(ctx context.Context) (*ServicePrincipalListResponse, error) {
	req, err := c.createRequest(ctx, http.MethodGet, fmt.Sprintf("%s/servicePrincipals", c.client.host))
	if err != nil {
		return nil, fmt.Errorf("failed creating request: %w", err)
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return nil, httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusOK) {
		return nil, runtime.NewResponseError(res)
	}

	return httputil.ReadRawResponse[ServicePrincipalListResponse](res)
}

func (c *ServicePrincipalListRequestBuilder) Post(
	ctx context.Context,
	servicePrincipal *ServicePrincipal,
) (*ServicePrincipal, error) {
	req, err := c.createRequest(ctx, http.MethodPost, fmt.Sprintf("%s/servicePrincipals", c.client.host))
	if err != nil {
		return nil, fmt.Errorf("failed creating request: %w", err)
	}

	if err := runtime.MarshalAsJSON(req, servicePrincipal); err != nil {
		return nil, err
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return nil, httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusCreated) {
		return nil, runtime.NewResponseError(res)
	}

	return httputil.ReadRawResponse[ServicePrincipal](res)
}

type ServicePrincipalItemRequestBuilder struct {
	*entityItemRequestBuilder
}

func newServicePrincipalItemRequestBuilder(client *GraphClient, id string) *ServicePrincipalItemRequestBuilder {
	return &ServicePrincipalItemRequestBuilder{
		entityItemRequestBuilder: newEntityItemRequestBuilder(client, id),
	}
}

func (c *ServicePrincipalItemRequestBuilder) Get(ctx context.Context) (*ServicePrincipal, error) {
	req, err := c.createRequest(ctx, http.MethodGet, fmt.Sprintf("%s/servicePrincipals/%s", c.client.host, c.id))
	if err != nil {
		return nil, fmt.Errorf("failed creating request: %w", err)
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return nil, httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusOK) {
		return nil, runtime.NewResponseError(res)
	}

	return httputil.ReadRawResponse[ServicePrincipal](res)
}

func (c *ServicePrincipalItemRequestBuilder) Delete(ctx context.Context) error {
	req, err := c.createRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/servicePrincipals/%s", c.client.host, c.id))
	if err != nil {
		return fmt.Errorf("failed creating request: %w", err)
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusNoContent) {
		return runtime.NewResponseError(res)
	}

	return nil
}
