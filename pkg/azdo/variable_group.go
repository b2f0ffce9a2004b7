package azdo

import (
	"context"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/taskagent"
)

// FindVariableGroup returns the variable group with the given name, or nil
// when it does not exist in the project.
func FindVariableGroup(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	name string,
) (*taskagent.VariableGroup, error) {
	client, err := taskagent.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	groups, err := client.GetVariableGroups(ctx, taskagent.GetVariableGroupsArgs{
		Project:   &projectId,
		GroupName: &name,
	})
	if err != nil {
		return nil, err
	}

	for _, group := range *groups {
		if *group.Name == name {
			return &group, nil
		}
	}

	return nil, nil
}

// CreateVariableGroup creates a variable group with the given non-secret
// variables.
func CreateVariableGroup(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId uuid.UUID,
	projectName string,
	name string,
	description string,
	variables map[string]string,
) (*taskagent.VariableGroup, error) {
	client, err := taskagent.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	groupVariables := make(map[string]interface{}, len(variables))
	for key, value := range variables {
		value := value
		isSecret := false
		groupVariables[key] = taskagent.VariableValue{
			Value:    &value,
			IsSecret: &isSecret,
		}
	}

	groupType := "Vsts"
	projectReferences := []taskagent.VariableGroupProjectReference{
		{
			Name:        &name,
			Description: &description,
			ProjectReference: &taskagent.ProjectReference{
				Id:   &projectId,
				Name: &projectName,
			},
		},
	}

	group, err := client.AddVariableGroup(ctx, taskagent.AddVariableGroupArgs{
		VariableGroupParameters: &taskagent.VariableGroupParameters{
			Name:                           &name,
			Description:                    &description,
			Type:                           &groupType,
			Variables:                      &groupVariables,
			VariableGroupProjectReferences: &projectReferences,
		},
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}
