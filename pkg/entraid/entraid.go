// Package entraid manages the automation identity: application registration,
// service principal, RBAC and federated identity credentials.
package entraid

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/google/uuid"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/graphsdk"
)

// Well known role definition ids assigned to the automation identity.
const (
	RoleDefinitionContributor           = "b24988ac-6180-42a0-ab88-20f7382dd24c"
	RoleDefinitionCognitiveServicesUser = "a97b65f3-24c7-4388-baec-2e87135dc908"
)

// FederatedIdentityAudience is the fixed audience for workload identity
// federation token exchange.
const FederatedIdentityAudience = "api://AzureADTokenExchange"

type Service struct {
	graphClient *graphsdk.GraphClient
	credential  azcore.TokenCredential
	armOptions  *arm.ClientOptions
}

func NewService(
	credential azcore.TokenCredential,
	clientOptions *azcore.ClientOptions,
	armOptions *arm.ClientOptions,
) (*Service, error) {
	graphClient, err := graphsdk.NewGraphClient(credential, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating graph client: %w", err)
	}

	return &Service{
		graphClient: graphClient,
		credential:  credential,
		armOptions:  armOptions,
	}, nil
}

// FindApplication looks up an application registration by display name.
// Returns nil (not an error) when no application with that name exists.
func (s *Service) FindApplication(ctx context.Context, displayName string) (*graphsdk.Application, error) {
	res, err := s.graphClient.
		Applications().
		Filter(fmt.Sprintf("displayName eq '%s'", displayName)).
		Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	if len(res.Value) == 0 {
		return nil, nil
	}

	return &res.Value[0], nil
}

// FindApplicationByAppId looks up an application registration by its client
// id. Returns nil when no such application exists.
func (s *Service) FindApplicationByAppId(ctx context.Context, appId string) (*graphsdk.Application, error) {
	res, err := s.graphClient.
		Applications().
		Filter(fmt.Sprintf("appId eq '%s'", appId)).
		Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	if len(res.Value) == 0 {
		return nil, nil
	}

	return &res.Value[0], nil
}

func (s *Service) CreateApplication(ctx context.Context, displayName string) (*graphsdk.Application, error) {
	app, err := s.graphClient.Applications().Post(ctx, &graphsdk.Application{
		DisplayName: displayName,
		Description: convert.RefOf("AI Foundry starter automation identity"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating application %s: %w", displayName, err)
	}

	return app, nil
}

// FindServicePrincipal looks up the service principal backing an application.
// Returns nil when the application has no service principal yet.
func (s *Service) FindServicePrincipal(ctx context.Context, appId string) (*graphsdk.ServicePrincipal, error) {
	res, err := s.graphClient.
		ServicePrincipals().
		Filter(fmt.Sprintf("appId eq '%s'", appId)).
		Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing service principals: %w", err)
	}

	if len(res.Value) == 0 {
		return nil, nil
	}

	return &res.Value[0], nil
}

func (s *Service) CreateServicePrincipal(ctx context.Context, appId string) (*graphsdk.ServicePrincipal, error) {
	sp, err := s.graphClient.ServicePrincipals().Post(ctx, &graphsdk.ServicePrincipal{
		AppId: appId,
	})
	if err != nil {
		return nil, fmt.Errorf("creating service principal for app %s: %w", appId, err)
	}

	return sp, nil
}

// DeleteApplication removes the application registration along with its
// service principal and federated credentials.
func (s *Service) DeleteApplication(ctx context.Context, appObjectId string) error {
	if err := s.graphClient.ApplicationById(appObjectId).Delete(ctx); err != nil {
		return fmt.Errorf("deleting application %s: %w", appObjectId, err)
	}

	return nil
}

// ListFederatedCredentials returns the federated identity credentials
// configured on the application registration.
func (s *Service) ListFederatedCredentials(
	ctx context.Context,
	appObjectId string,
) ([]graphsdk.FederatedIdentityCredential, error) {
	res, err := s.graphClient.ApplicationById(appObjectId).FederatedIdentityCredentials().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing federated credentials: %w", err)
	}

	return res.Value, nil
}

// ApplyFederatedCredential reconciles a federated identity credential by
// logical name: any existing credential with the same name is deleted and a
// new one is created from the provided issuer/subject pair. The pair is taken
// verbatim from the caller; it is never patched in place and never derived
// locally.
func (s *Service) ApplyFederatedCredential(
	ctx context.Context,
	appObjectId string,
	credential *graphsdk.FederatedIdentityCredential,
) (*graphsdk.FederatedIdentityCredential, error) {
	existing, err := s.ListFederatedCredentials(ctx, appObjectId)
	if err != nil {
		return nil, err
	}

	for _, current := range existing {
		if current.Name != credential.Name {
			continue
		}

		err := s.graphClient.
			ApplicationById(appObjectId).
			FederatedIdentityCredentialById(*current.Id).
			Delete(ctx)
		if err != nil {
			return nil, fmt.Errorf("deleting federated credential %s: %w", credential.Name, err)
		}
	}

	if len(credential.Audiences) == 0 {
		credential.Audiences = []string{FederatedIdentityAudience}
	}

	created, err := s.graphClient.
		ApplicationById(appObjectId).
		FederatedIdentityCredentials().
		Post(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("creating federated credential %s: %w", credential.Name, err)
	}

	return created, nil
}

// EnsureRoleAssignment grants the role to the principal at the given scope.
// An already existing assignment is reported via the bool, not an error.
func (s *Service) EnsureRoleAssignment(
	ctx context.Context,
	subscriptionId string,
	scope string,
	principalId string,
	roleDefinitionId string,
) (bool, error) {
	client, err := armauthorization.NewRoleAssignmentsClient(subscriptionId, s.credential, s.armOptions)
	if err != nil {
		return false, fmt.Errorf("creating role assignments client: %w", err)
	}

	roleDefinition := fmt.Sprintf(
		"/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		subscriptionId,
		roleDefinitionId,
	)

	_, err = client.Create(ctx, scope, uuid.New().String(), armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      &principalId,
			RoleDefinitionID: &roleDefinition,
			PrincipalType:    convert.RefOf(armauthorization.PrincipalTypeServicePrincipal),
		},
	}, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == "RoleAssignmentExists" {
			return false, nil
		}

		return false, fmt.Errorf("assigning role %s at %s: %w", roleDefinitionId, scope, err)
	}

	return true, nil
}
