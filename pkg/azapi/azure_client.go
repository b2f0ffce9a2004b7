// Package azapi wraps the Azure control plane clients used by the starter.
package azapi

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

type AzureClient struct {
	credential azcore.TokenCredential
	armOptions *arm.ClientOptions
}

func NewAzureClient(credential azcore.TokenCredential, armOptions *arm.ClientOptions) *AzureClient {
	return &AzureClient{
		credential: credential,
		armOptions: armOptions,
	}
}
