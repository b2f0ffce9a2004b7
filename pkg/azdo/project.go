package azdo

import (
	"context"
	"fmt"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
)

// FindProjectByName returns the project with the given name, or nil when no
// such project exists in the organization.
func FindProjectByName(
	ctx context.Context,
	connection *azuredevops.Connection,
	name string,
) (*core.TeamProjectReference, error) {
	coreClient, err := core.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	getProjectsResponse, err := coreClient.GetProjects(ctx, core.GetProjectsArgs{})
	if err != nil {
		return nil, err
	}

	for _, project := range getProjectsResponse.Value {
		if *project.Name == name {
			return &project, nil
		}
	}

	return nil, nil
}

// GetProjectByName is FindProjectByName with a missing project promoted to an
// error. The provisioning flow treats a missing project as a precondition
// failure rather than something to create.
func GetProjectByName(
	ctx context.Context,
	connection *azuredevops.Connection,
	name string,
) (*core.TeamProjectReference, error) {
	project, err := FindProjectByName(ctx, connection, name)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("azure devops project %s not found", name)
	}

	return project, nil
}
