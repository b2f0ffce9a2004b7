package azdo

import (
	"context"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

// FindRepository returns the repository with the given name in the project,
// or nil when it does not exist.
func FindRepository(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	repoName string,
) (*git.GitRepository, error) {
	gitClient, err := git.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	getRepositoriesResult, err := gitClient.GetRepositories(ctx, git.GetRepositoriesArgs{
		Project: &projectId,
	})
	if err != nil {
		return nil, err
	}

	for _, repo := range *getRepositoriesResult {
		if *repo.Name == repoName {
			return &repo, nil
		}
	}

	return nil, nil
}

// CreateRepository creates a new git repository in the project.
func CreateRepository(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	repoName string,
) (*git.GitRepository, error) {
	gitClient, err := git.NewClient(ctx, connection)
	if err != nil {
		return nil, err
	}

	repo, err := gitClient.CreateRepository(ctx, git.CreateRepositoryArgs{
		Project: &projectId,
		GitRepositoryToCreate: &git.GitRepositoryCreateOptions{
			Name: &repoName,
		},
	})
	if err != nil {
		return nil, err
	}

	return repo, nil
}
