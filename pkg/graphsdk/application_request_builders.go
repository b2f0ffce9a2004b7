package graphsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/httputil"
)

type ApplicationListRequestBuilder struct {
	*EntityListRequestBuilder[ApplicationListRequestBuilder]
}

func newApplicationsRequestBuilder(client *GraphClient) *ApplicationListRequestBuilder {
	builder := &ApplicationListRequestBuilder{}
	builder.EntityListRequestBuilder = newEntityListRequestBuilder(builder, client)

	return builder
}

// Gets a list of applications that the current logged in user has access to.
func (c *ApplicationListRequestBuilder) Get(ctx context.Context) (*ApplicationListResponse, error) {
	req, err := c.createRequest(ctx, http.MethodGet, fmt.Sprintf("%s/applications", c.client.host))
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

	return httputil.ReadRawResponse[ApplicationListResponse](res)
}

func (c *ApplicationListRequestBuilder) Post(ctx context.Context, application *Application) (*Application, error) {
	req, err := c.createRequest(ctx, http.MethodPost, fmt.Sprintf("%s/applications", c.client.host))
	if err != nil {
		return nil, fmt.Errorf("failed creating request: %w", err)
	}

	if err := runtime.MarshalAsJSON(req, application); err != nil {
		return nil, err
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return nil, httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusCreated) {
		return nil, runtime.NewResponseError(res)
	}

	return httputil.ReadRawResponse[Application](res)
}

type ApplicationItemRequestBuilder struct {
	*entityItemRequestBuilder
}

func newApplicationItemRequestBuilder(client *GraphClient, id string) *ApplicationItemRequestBuilder {
	return &ApplicationItemRequestBuilder{
		entityItemRequestBuilder: newEntityItemRequestBuilder(client, id),
	}
}

// Gets a Microsoft Graph Application for the specified application identifier
func (c *ApplicationItemRequestBuilder) Get(ctx context.Context) (*Application, error) {
	req, err := c.createRequest(ctx, http.MethodGet, fmt.Sprintf("%s/applications/%s", c.client.host, c.id))
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

	return httputil.ReadRawResponse[Application](res)
}

// Deletes the application registration.
func (c *ApplicationItemRequestBuilder) Delete(ctx context.Context) error {
	req, err := c.createRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/applications/%s", c.client.host, c.id))
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

func (c *ApplicationItemRequestBuilder) FederatedIdentityCredentials() *FederatedIdentityCredentialListRequestBuilder {
	return NewFederatedIdentityCredentialListRequestBuilder(c.client, c.id)
}

func (c *ApplicationItemRequestBuilder) FederatedIdentityCredentialById(
	id string,
) *FederatedIdentityCredentialItemRequestBuilder {
	return NewFederatedIdentityCredentialItemRequestBuilder(c.client, c.id, id)
}
