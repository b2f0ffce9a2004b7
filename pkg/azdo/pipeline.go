package azdo

import (
	"context"
	"fmt"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
)

// PipelineDefinitionSpec holds the inputs for a YAML pipeline definition.
type PipelineDefinitionSpec struct {
	Name           string
	RepositoryName string
	YamlPath       string
	Variables      map[string]string
}

// Creates a variable to be associated with a pipeline
func createBuildDefinitionVariable(value string, isSecret bool, allowOverride bool) build.BuildDefinitionVariable {
	return build.BuildDefinitionVariable{
		AllowOverride: &allowOverride,
		IsSecret:      &isSecret,
		Value:         &value,
	}
}

// FindPipelineDefinition returns the build definition with the given name, or
// nil when it does not exist in the project.
func FindPipelineDefinition(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	name string,
) (*build.BuildDefinitionReference, error) {
	client, err := build.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	definitions, err := client.GetDefinitions(ctx, build.GetDefinitionsArgs{
		Project: &projectId,
		Name:    &name,
	})
	if err != nil {
		return nil, err
	}

	for _, definition := range definitions.Value {
		if *definition.Name == name {
			return &definition, nil
		}
	}

	return nil, nil
}

// CreatePipelineDefinition creates a YAML build definition bound to the given
// repository.
func CreatePipelineDefinition(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	spec PipelineDefinitionSpec,
) (*build.BuildDefinition, error) {
	client, err := build.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	repoType := "tfsgit"
	buildDefinitionType := build.DefinitionType("build")
	definitionQueueStatus := build.DefinitionQueueStatus("enabled")
	defaultBranch := fmt.Sprintf("refs/heads/%s", DefaultBranch)
	buildRepository := &build.BuildRepository{
		Type:          &repoType,
		Name:          &spec.RepositoryName,
		DefaultBranch: &defaultBranch,
	}

	process := map[string]interface{}{
		"type":         2,
		"yamlFilename": spec.YamlPath,
	}

	variables := make(map[string]build.BuildDefinitionVariable, len(spec.Variables))
	for key, value := range spec.Variables {
		variables[key] = createBuildDefinitionVariable(value, false, false)
	}

	buildDefinition := &build.BuildDefinition{
		Name:        &spec.Name,
		Type:        &buildDefinitionType,
		QueueStatus: &definitionQueueStatus,
		Repository:  buildRepository,
		Process:     process,
		Variables:   &variables,
	}

	newBuildDefinition, err := client.CreateDefinition(ctx, build.CreateDefinitionArgs{
		Project:    &projectId,
		Definition: buildDefinition,
	})
	if err != nil {
		return nil, err
	}

	return newBuildDefinition, nil
}

// QueueBuild queues a run of the given build definition and returns the
// queued build.
func QueueBuild(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	definitionId int,
) (*build.Build, error) {
	client, err := build.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	newBuild, err := client.QueueBuild(ctx, build.QueueBuildArgs{
		Project: &projectId,
		Build: &build.Build{
			Definition: &build.DefinitionReference{
				Id: &definitionId,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return newBuild, nil
}

// GetBuild returns the current state of a queued or running build.
func GetBuild(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	buildId int,
) (*build.Build, error) {
	client, err := build.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	return client.GetBuild(ctx, build.GetBuildArgs{
		Project: &projectId,
		BuildId: &buildId,
	})
}
