package provision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

// fakeControlPlane stands in for a cloud control plane keyed by resource name.
type fakeControlPlane struct {
	existing    map[string]bool
	createCalls int
	failCreate  map[string]error
}

func newFakeControlPlane() *fakeControlPlane {
	return &fakeControlPlane{
		existing:   map[string]bool{},
		failCreate: map[string]error{},
	}
}

func (f *fakeControlPlane) step(resourceType, name string) Step {
	return Step{
		ResourceType: resourceType,
		Name:         name,
		Lookup: func(ctx context.Context) (bool, error) {
			return f.existing[name], nil
		},
		Create: func(ctx context.Context) error {
			f.createCalls++
			if err := f.failCreate[name]; err != nil {
				return err
			}
			f.existing[name] = true
			return nil
		},
	}
}

func TestEnsureIsIdempotentOnName(t *testing.T) {
	plane := newFakeControlPlane()
	runner := NewRunnerWithClock(clock.NewMock())
	step := plane.step("resourceGroup", "rg-demo-dev")

	first := runner.Ensure(context.Background(), step)
	require.Equal(t, StatusCreated, first.Status)

	second := runner.Ensure(context.Background(), step)
	require.Equal(t, StatusSkipped, second.Status)
	require.Equal(t, "already exists", second.Message)
	require.Equal(t, 1, plane.createCalls)
}

func TestRunDoesNotRollBackOnPartialFailure(t *testing.T) {
	plane := newFakeControlPlane()
	plane.failCreate["ais-demo-dev"] = errors.New("quota exceeded")
	runner := NewRunnerWithClock(clock.NewMock())

	steps := []Step{
		plane.step("resourceGroup", "rg-demo-dev"),
		plane.step("aiServices", "ais-demo-dev"),
	}

	summary := runner.Run(context.Background(), steps, nil)
	require.Equal(t, 1, summary.Created)
	require.Equal(t, 1, summary.Failed)
	require.True(t, plane.existing["rg-demo-dev"])

	// re-run: the earlier success is skipped, the failure is retried
	delete(plane.failCreate, "ais-demo-dev")
	rerun := runner.Run(context.Background(), steps, nil)
	require.Equal(t, StatusSkipped, rerun.Resources[0].Status)
	require.Equal(t, StatusCreated, rerun.Resources[1].Status)
}

func TestRunContinuesPastFailures(t *testing.T) {
	plane := newFakeControlPlane()
	plane.failCreate["rg-demo-dev"] = errors.New("denied")
	runner := NewRunnerWithClock(clock.NewMock())

	steps := []Step{
		plane.step("resourceGroup", "rg-demo-dev"),
		plane.step("resourceGroup", "rg-demo-test"),
	}

	summary := runner.Run(context.Background(), steps, nil)
	require.Equal(t, StatusFailed, summary.Resources[0].Status)
	require.Equal(t, "denied", summary.Resources[0].Message)
	require.Equal(t, StatusCreated, summary.Resources[1].Status)
}

func TestLookupErrorIsFailure(t *testing.T) {
	runner := NewRunnerWithClock(clock.NewMock())

	outcome := runner.Ensure(context.Background(), Step{
		ResourceType: "resourceGroup",
		Name:         "rg-demo-dev",
		Lookup: func(ctx context.Context) (bool, error) {
			return false, errors.New("403 forbidden")
		},
		Create: func(ctx context.Context) error {
			t.Fatal("create must not run after a failed lookup")
			return nil
		},
	})

	require.Equal(t, StatusFailed, outcome.Status)
	require.Contains(t, outcome.Message, "403")
}

func TestSettleDelayAppliesOnlyAfterCreate(t *testing.T) {
	mockClock := clock.NewMock()
	runner := NewRunnerWithClock(mockClock)
	plane := newFakeControlPlane()

	step := plane.step("servicePrincipal", "sp-demo")
	step.SettleDelay = 20 * time.Second

	done := make(chan Outcome, 1)
	go func() {
		done <- runner.Ensure(context.Background(), step)
	}()

	// the mock clock only advances manually, so a settle sleep would hang
	// without this
	require.Eventually(t, func() bool {
		mockClock.Add(20 * time.Second)
		select {
		case outcome := <-done:
			require.Equal(t, StatusCreated, outcome.Status)
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	// skipped resources never sleep
	outcome := runner.Ensure(context.Background(), step)
	require.Equal(t, StatusSkipped, outcome.Status)
}

func TestExitCodeContract(t *testing.T) {
	summary := NewSummary()
	require.Equal(t, 0, summary.ExitCode())

	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-a", Status: StatusSkipped})
	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-b", Status: StatusSkipped})
	require.Equal(t, 0, summary.ExitCode(), "a run where everything already existed succeeds")

	summary.Add(Outcome{ResourceType: "pipeline", Name: "deploy", Status: StatusFailed, Message: "boom"})
	require.Equal(t, 1, summary.ExitCode())
	require.Error(t, summary.Err())
}

func TestDryRunSkipsCreates(t *testing.T) {
	plane := newFakeControlPlane()
	plane.existing["rg-existing"] = true

	runner := NewRunner()
	runner.DryRun = true

	summary := runner.Run(context.Background(), []Step{
		plane.step("resourceGroup", "rg-existing"),
		plane.step("resourceGroup", "rg-missing"),
	}, nil)

	require.Equal(t, 0, plane.createCalls)
	require.Equal(t, 0, summary.Created)
	require.Equal(t, 2, summary.Skipped)
	require.False(t, plane.existing["rg-missing"])
}
