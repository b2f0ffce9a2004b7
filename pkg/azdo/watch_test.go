package azdo

import (
	"context"
	"testing"
	"time"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
	"github.com/stretchr/testify/require"
)

func buildInState(status build.BuildStatus, result build.BuildResult) *build.Build {
	b := &build.Build{Status: &status}
	if status == build.BuildStatusValues.Completed {
		b.Result = &result
	}
	return b
}

func Test_watchBuild(t *testing.T) {
	options := WatchOptions{
		Interval: time.Millisecond,
		MaxWait:  100 * time.Millisecond,
	}

	t.Run("polls until completed", func(t *testing.T) {
		states := []*build.Build{
			buildInState(build.BuildStatusValues.NotStarted, ""),
			buildInState(build.BuildStatusValues.InProgress, ""),
			buildInState(build.BuildStatusValues.Completed, build.BuildResultValues.Succeeded),
		}

		polls := 0
		getter := func(ctx context.Context) (*build.Build, error) {
			state := states[polls]
			polls++
			return state, nil
		}

		var reported []*build.Build
		completed, err := watchBuild(context.Background(), getter, options, func(b *build.Build) {
			reported = append(reported, b)
		})

		require.NoError(t, err)
		require.Equal(t, 3, polls)
		require.Len(t, reported, 3)
		require.True(t, BuildSucceeded(completed))
	})

	t.Run("gives up after the wait budget", func(t *testing.T) {
		getter := func(ctx context.Context) (*build.Build, error) {
			return buildInState(build.BuildStatusValues.InProgress, ""), nil
		}

		_, err := watchBuild(context.Background(), getter, options, nil)
		require.ErrorContains(t, err, "waiting for build to complete")
	})

	t.Run("failed build is still returned", func(t *testing.T) {
		getter := func(ctx context.Context) (*build.Build, error) {
			return buildInState(build.BuildStatusValues.Completed, build.BuildResultValues.Failed), nil
		}

		completed, err := watchBuild(context.Background(), getter, options, nil)
		require.NoError(t, err)
		require.False(t, BuildSucceeded(completed))
	})
}

func Test_BuildSucceeded(t *testing.T) {
	require.False(t, BuildSucceeded(nil))
	require.False(t, BuildSucceeded(&build.Build{}))
	require.True(t, BuildSucceeded(
		buildInState(build.BuildStatusValues.Completed, build.BuildResultValues.PartiallySucceeded)))
}
