package azdo

import (
	"context"
	"fmt"
	"time"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
	"github.com/sethvargo/go-retry"
)

// WatchOptions controls the polling cadence of WatchBuild. The interval is
// constant; build durations do not follow the shrinking-gap pattern that
// backoff assumes.
type WatchOptions struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// DefaultWatchOptions matches the cadence used by the provisioning pipeline
// monitor.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Interval: 15 * time.Second,
		MaxWait:  30 * time.Minute,
	}
}

// BuildGetter fetches the current state of a build. It exists so the watch
// loop can be driven in tests without an Azure DevOps organization.
type BuildGetter func(ctx context.Context) (*build.Build, error)

// WatchBuild polls the given build until it completes or the wait budget is
// exhausted. Each poll result is passed to report when non-nil. The returned
// build is in a completed state; the caller inspects Result to decide
// success.
func WatchBuild(
	ctx context.Context,
	connection *azuredevops.Connection,
	projectId string,
	buildId int,
	options WatchOptions,
	report func(*build.Build),
) (*build.Build, error) {
	getter := func(ctx context.Context) (*build.Build, error) {
		return GetBuild(ctx, connection, projectId, buildId)
	}

	return watchBuild(ctx, getter, options, report)
}

func watchBuild(
	ctx context.Context,
	getBuild BuildGetter,
	options WatchOptions,
	report func(*build.Build),
) (*build.Build, error) {
	var completed *build.Build

	err := retry.Do(
		ctx,
		retry.WithMaxDuration(options.MaxWait, retry.NewConstant(options.Interval)),
		func(ctx context.Context) error {
			current, err := getBuild(ctx)
			if err != nil {
				// transient lookup failures should not end the watch
				return retry.RetryableError(err)
			}

			if report != nil {
				report(current)
			}

			if current.Status == nil || *current.Status != build.BuildStatusValues.Completed {
				return retry.RetryableError(fmt.Errorf("build is still running"))
			}

			completed = current
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("waiting for build to complete: %w", err)
	}

	return completed, nil
}

// BuildSucceeded reports whether a completed build finished with a
// successful or partially successful result.
func BuildSucceeded(b *build.Build) bool {
	if b == nil || b.Result == nil {
		return false
	}

	return *b.Result == build.BuildResultValues.Succeeded ||
		*b.Result == build.BuildResultValues.PartiallySucceeded
}
