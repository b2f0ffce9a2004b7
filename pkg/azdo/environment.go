package azdo

import (
	"context"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/taskagent"
)

// FindEnvironment returns the deployment environment with the given name, or
// nil when it does not exist in the project.
func FindEnvironment(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	name string,
) (*taskagent.EnvironmentInstance, error) {
	client, err := taskagent.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	environments, err := client.GetEnvironments(ctx, taskagent.GetEnvironmentsArgs{
		Project: &projectId,
		Name:    &name,
	})
	if err != nil {
		return nil, err
	}

	for _, environment := range environments.Value {
		if *environment.Name == name {
			return &environment, nil
		}
	}

	return nil, nil
}

// CreateEnvironment creates a deployment environment in the project.
// Approval gates are left for the project administrators to configure.
func CreateEnvironment(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	name string,
	description string,
) (*taskagent.EnvironmentInstance, error) {
	client, err := taskagent.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	environment, err := client.AddEnvironment(ctx, taskagent.AddEnvironmentArgs{
		Project: &projectId,
		EnvironmentCreateParameter: &taskagent.EnvironmentCreateParameter{
			Name:        &name,
			Description: &description,
		},
	})
	if err != nil {
		return nil, err
	}

	return environment, nil
}
