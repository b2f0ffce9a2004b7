package graphsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/httputil"
)

type FederatedIdentityCredentialListRequestBuilder struct {
	*EntityListRequestBuilder[FederatedIdentityCredentialListRequestBuilder]
	applicationId string
}

func NewFederatedIdentityCredentialListRequestBuilder(
	client *GraphClient,
	applicationId string,
) *FederatedIdentityCredentialListRequestBuilder {
	builder := &FederatedIdentityCredentialListRequestBuilder{
		applicationId: applicationId,
	}
	builder.EntityListRequestBuilder = newEntityListRequestBuilder(builder, client)

	return builder
}

// Gets the list of federated identity credentials configured on the application.
func (c *FederatedIdentityCredentialListRequestBuilder) Get(
	ctx context.Context,
) (*FederatedIdentityCredentialListResponse, error) {
	req, err := c.createRequest(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/applications/%s/federatedIdentityCredentials", c.client.host, c.applicationId),
	)
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

	return httputil.ReadRawResponse[FederatedIdentityCredentialListResponse](res)
}

func (c *FederatedIdentityCredentialListRequestBuilder) Post(
	ctx context.Context,
	federatedIdentityCredential *FederatedIdentityCredential,
) (*FederatedIdentityCredential, error) {
	req, err := c.createRequest(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/applications/%s/federatedIdentityCredentials", c.client.host, c.applicationId),
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating request: %w", err)
	}

	if err := runtime.MarshalAsJSON(req, federatedIdentityCredential); err != nil {
		return nil, err
	}

	res, err := c.client.pipeline.Do(req)
	if err != nil {
		return nil, httputil.HandleRequestError(res, err)
	}

	if !runtime.HasStatusCode(res, http.StatusCreated) {
		return nil, runtime.NewResponseError(res)
	}

	return httputil.ReadRawResponse[FederatedIdentityCredential](res)
}

type FederatedIdentityCredentialItemRequestBuilder struct {
	*entityItemRequestBuilder
	applicationId string
}

func NewFederatedIdentityCredentialItemRequestBuilder(
	client *GraphClient,
	applicationId string,
	id string,
) *FederatedIdentityCredentialItemRequestBuilder {
	return &FederatedIdentityCredentialItemRequestBuilder{
		entityItemRequestBuilder: newEntityItemRequestBuilder(client, id),
		applicationId:            applicationId,
	}
}

// Gets a federated identity credential by its identifier.
func (c *FederatedIdentityCredentialItemRequestBuilder) Get(ctx context.Context) (*FederatedIdentityCredential, error) {
	req, err := c.createRequest(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/applications/%s/federatedIdentityCredentials/%s", c.client.host, c.applicationId, c.id),
	)
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

	return httputil.ReadRawResponse[FederatedIdentityCredential](res)
}

func (c *FederatedIdentityCredentialItemRequestBuilder) Delete(ctx context.Context) error {
	req, err := c.createRequest(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("%s/applications/%s/federatedIdentityCredentials/%s", c.client.host, c.applicationId, c.id),
	)
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
