// Package azdo wraps the Azure DevOps REST SDK with the lookups and
// creations the starter provisioning flow needs. All helpers take a
// *azuredevops.Connection so callers control authentication.
package azdo

import (
	"context"
	"fmt"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
)

var (
	// hostname of the Azure DevOps service.
	AzDoHostName = "dev.azure.com"
	// environment variable that holds the Azure DevOps PAT
	AzDoPatName = "AZURE_DEVOPS_EXT_PAT"
	// target Azure cloud recorded on service connections
	CloudEnvironment = "AzureCloud"
	// default branch for new repositories and pipeline triggers
	DefaultBranch = "main"
	// service endpoint type for Azure Resource Manager connections
	ServiceEndpointTypeAzureRM = "azurerm"
	// authorization scheme for federated (secretless) service connections
	AuthSchemeWorkloadIdentityFederation = "WorkloadIdentityFederation"
)

// Authorization parameter keys populated by Azure DevOps on a federated
// service connection. The values are opaque and must be read back from the
// service, never derived locally.
const (
	FederationIssuerParameter  = "workloadIdentityFederationIssuer"
	FederationSubjectParameter = "workloadIdentityFederationSubject"
)

// helper method to return an Azure DevOps connection used by the AzDo go sdk
func GetConnection(
	ctx context.Context, organization string, personalAccessToken string) (*azuredevops.Connection, error) {
	if organization == "" {
		return nil, fmt.Errorf("organization name is required")
	}

	if personalAccessToken == "" {
		return nil, fmt.Errorf("personal access token is required")
	}

	organizationUrl := fmt.Sprintf("https://%s/%s", AzDoHostName, organization)
	return azuredevops.NewPatConnection(organizationUrl, personalAccessToken), nil
}
