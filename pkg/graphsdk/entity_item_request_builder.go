package graphsdk

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// entityItemRequestBuilder carries the client and object id shared by every
// request builder that addresses a single directory object.
type entityItemRequestBuilder struct {
	id     string
	client *GraphClient
}

func newEntityItemRequestBuilder(client *GraphClient, id string) *entityItemRequestBuilder {
	return &entityItemRequestBuilder{
		client: client,
		id:     id,
	}
}

// Creates a HTTP request for the specified method and URL
func (b *entityItemRequestBuilder) createRequest(
	ctx context.Context,
	method string,
	rawUrl string,
) (*policy.Request, error) {
	return runtime.NewRequest(ctx, method, rawUrl)
}
