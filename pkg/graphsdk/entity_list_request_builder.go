package graphsdk

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

type entityListRequestInfo struct {
	filter *string
}

type EntityListRequestBuilder[T any] struct {
	client      *GraphClient
	builder     *T
	requestInfo *entityListRequestInfo
}

// Creates a new EntityListRequestBuilder
// builder - The parent entity builder
func newEntityListRequestBuilder[T any](builder *T, client *GraphClient) *EntityListRequestBuilder[T] {
	return &EntityListRequestBuilder[T]{
		client:      client,
		builder:     builder,
		requestInfo: &entityListRequestInfo{},
	}
}

// Creates a HTTP request for the specified method, URL and configured request information
func (b *EntityListRequestBuilder[T]) createRequest(
	ctx context.Context,
	method string,
	rawUrl string,
) (*policy.Request, error) {
	req, err := runtime.NewRequest(ctx, method, rawUrl)
	if err != nil {
		return nil, err
	}

	raw := req.Raw()
	query := raw.URL.Query()

	if b.requestInfo.filter != nil {
		query.Set("$filter", *b.requestInfo.filter)
	}

	raw.URL.RawQuery = query.Encode()

	return req, err
}

func (b *EntityListRequestBuilder[T]) Filter(filterExpression string) *T {
	b.requestInfo.filter = &filterExpression

	return b.builder
}
