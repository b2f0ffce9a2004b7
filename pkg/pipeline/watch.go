package pipeline

import (
	"context"
	"fmt"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
)

// RunAndWatch queues a run of the configured pipeline and polls it until it
// completes or the wait budget runs out. Returns the completed build; the
// caller decides the exit code from its result.
func (p *Provider) RunAndWatch(ctx context.Context, options azdo.WatchOptions) (*build.Build, error) {
	project, err := azdo.GetProjectByName(ctx, p.connection, p.config.AzureDevOps.Project)
	if err != nil {
		return nil, err
	}

	projectId := project.Id.String()
	pipelineName := p.config.AzureDevOps.PipelineName

	definition, err := azdo.FindPipelineDefinition(ctx, p.connection, projectId, pipelineName)
	if err != nil {
		return nil, err
	}
	if definition == nil {
		return nil, fmt.Errorf("pipeline %s not found, run %s first",
			pipelineName, output.WithBackticks("starter provision devops"))
	}

	queued, err := azdo.QueueBuild(ctx, p.connection, projectId, *definition.Id)
	if err != nil {
		return nil, fmt.Errorf("queueing pipeline run: %w", err)
	}

	p.console.Message(ctx, fmt.Sprintf(
		"Queued run %s of %s",
		output.WithHighLightFormat("%s", convert.ToValueWithDefault(queued.BuildNumber, "(pending)")),
		pipelineName))

	var lastStatus build.BuildStatus
	completed, err := azdo.WatchBuild(
		ctx, p.connection, projectId, *queued.Id, options,
		func(current *build.Build) {
			if current.Status == nil || *current.Status == lastStatus {
				return
			}
			lastStatus = *current.Status
			p.console.Message(ctx, fmt.Sprintf("  status: %s", lastStatus))
		})
	if err != nil {
		return nil, err
	}

	if azdo.BuildSucceeded(completed) {
		p.console.Message(ctx, output.WithSuccessFormat("Pipeline run succeeded"))
	} else {
		p.console.Message(ctx, output.WithErrorFormat("Pipeline run finished with result %s", buildResult(completed)))
	}

	return completed, nil
}

func buildResult(b *build.Build) string {
	if b == nil || b.Result == nil {
		return "unknown"
	}
	return string(*b.Result)
}
