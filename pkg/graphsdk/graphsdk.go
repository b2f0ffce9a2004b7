package graphsdk

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// The host name for the Graph API.
const HostName = "graph.microsoft.com"

var ServiceConfig cloud.ServiceConfiguration = cloud.ServiceConfiguration{
	Audience: "https://graph.microsoft.com",
	Endpoint: "https://graph.microsoft.com/v1.0",
}

// GraphClient is a minimal Microsoft Graph client covering the application,
// service principal and federated identity credential surface.
type GraphClient struct {
	pipeline runtime.Pipeline
	host     string
}

func NewGraphClient(credential azcore.TokenCredential, clientOptions *azcore.ClientOptions) (*GraphClient, error) {
	return &GraphClient{
		pipeline: NewPipeline(credential, ServiceConfig, clientOptions),
		host:     ServiceConfig.Endpoint,
	}, nil
}

func (c *GraphClient) Applications() *ApplicationListRequestBuilder {
	return newApplicationsRequestBuilder(c)
}

func (c *GraphClient) ApplicationById(id string) *ApplicationItemRequestBuilder {
	return newApplicationItemRequestBuilder(c, id)
}

func (c *GraphClient) ServicePrincipals() *ServicePrincipalListRequestBuilder {
	return newServicePrincipalListRequestBuilder(c)
}

func (c *GraphClient) ServicePrincipalById(id string) *ServicePrincipalItemRequestBuilder {
	return newServicePrincipalItemRequestBuilder(c, id)
}
