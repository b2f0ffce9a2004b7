package azdo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/serviceendpoint"
)

// FederatedConnectionSpec holds the inputs for a Workload Identity
// Federation service connection. The service principal must already exist;
// Azure DevOps only records its identity and mints the federation issuer and
// subject on its side.
type FederatedConnectionSpec struct {
	Name             string
	ServicePrincipal string
	TenantId         string
	SubscriptionId   string
	SubscriptionName string
}

// FindServiceConnection returns the service connection with the given name,
// or nil when it does not exist in the project.
func FindServiceConnection(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	name string,
) (*serviceendpoint.ServiceEndpoint, error) {
	client, err := serviceendpoint.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	endpointNames := []string{name}
	serviceEndpoints, err := client.GetServiceEndpointsByNames(ctx, serviceendpoint.GetServiceEndpointsByNamesArgs{
		Project:       &projectId,
		EndpointNames: &endpointNames,
	})
	if err != nil {
		return nil, err
	}

	for _, endpoint := range *serviceEndpoints {
		if *endpoint.Name == name {
			return &endpoint, nil
		}
	}

	return nil, nil
}

// CreateFederatedServiceConnection creates an Azure Resource Manager service
// connection using the Workload Identity Federation scheme. The returned
// endpoint carries the service-generated issuer and subject in its
// authorization parameters.
func CreateFederatedServiceConnection(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId uuid.UUID,
	projectName string,
	spec FederatedConnectionSpec,
) (*serviceendpoint.ServiceEndpoint, error) {
	client, err := serviceendpoint.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	endpointType := ServiceEndpointTypeAzureRM
	endpointOwner := "library"
	endpointUrl := "https://management.azure.com/"
	endpointIsShared := false
	endpointScheme := AuthSchemeWorkloadIdentityFederation

	endpointAuthorizationParameters := map[string]string{
		"serviceprincipalid": spec.ServicePrincipal,
		"tenantid":           spec.TenantId,
	}

	endpointData := map[string]string{
		"environment":      CloudEnvironment,
		"subscriptionId":   spec.SubscriptionId,
		"subscriptionName": spec.SubscriptionName,
		"scopeLevel":       "Subscription",
		"creationMode":     "Manual",
	}

	projectReferences := []serviceendpoint.ServiceEndpointProjectReference{
		{
			Name: &spec.Name,
			ProjectReference: &serviceendpoint.ProjectReference{
				Id:   &projectId,
				Name: &projectName,
			},
		},
	}

	endpoint, err := client.CreateServiceEndpoint(ctx, serviceendpoint.CreateServiceEndpointArgs{
		Endpoint: &serviceendpoint.ServiceEndpoint{
			Type:     &endpointType,
			Owner:    &endpointOwner,
			Url:      &endpointUrl,
			Name:     &spec.Name,
			IsShared: &endpointIsShared,
			Authorization: &serviceendpoint.EndpointAuthorization{
				Scheme:     &endpointScheme,
				Parameters: &endpointAuthorizationParameters,
			},
			Data:                             &endpointData,
			ServiceEndpointProjectReferences: &projectReferences,
		},
	})
	if err != nil {
		return nil, err
	}

	return endpoint, nil
}

// GetServiceConnectionDetails fetches the current state of a service
// connection, including the federation authorization parameters.
func GetServiceConnectionDetails(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	endpointId uuid.UUID,
) (*serviceendpoint.ServiceEndpoint, error) {
	client, err := serviceendpoint.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	endpoint, err := client.GetServiceEndpointDetails(ctx, serviceendpoint.GetServiceEndpointDetailsArgs{
		Project:    &projectId,
		EndpointId: &endpointId,
	})
	if err != nil {
		return nil, err
	}

	return endpoint, nil
}

// DeleteServiceConnection removes a service connection from the project.
func DeleteServiceConnection(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	endpointId uuid.UUID,
) error {
	client, err := serviceendpoint.NewClient(ctx, connection)
	if err != nil {
		return err
	}

	projectIds := []string{projectId}
	return client.DeleteServiceEndpoint(ctx, serviceendpoint.DeleteServiceEndpointArgs{
		EndpointId: &endpointId,
		ProjectIds: &projectIds,
	})
}

// FederationParameters extracts the service-generated issuer and subject
// from a service connection. Both values are opaque to callers; they are
// copied verbatim into Entra ID federated credentials.
func FederationParameters(endpoint *serviceendpoint.ServiceEndpoint) (issuer string, subject string, err error) {
	if endpoint.Authorization == nil || endpoint.Authorization.Parameters == nil {
		return "", "", fmt.Errorf("service connection %s has no authorization parameters", *endpoint.Name)
	}

	parameters := *endpoint.Authorization.Parameters
	issuer, subject = parameters[FederationIssuerParameter], parameters[FederationSubjectParameter]
	if issuer == "" || subject == "" {
		return "", "", fmt.Errorf(
			"service connection %s is missing workload identity federation parameters", *endpoint.Name)
	}

	return issuer, subject, nil
}
