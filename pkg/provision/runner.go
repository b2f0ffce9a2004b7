package provision

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Step describes one idempotent provisioning unit: a single existence query
// and a single creating mutation against an external control plane.
type Step struct {
	ResourceType string
	Name         string

	// Lookup reports whether a resource with this name already exists.
	// Existence is decided by name only, never by content comparison, so an
	// existing resource with drifted settings is left unchanged.
	Lookup func(ctx context.Context) (bool, error)

	// Create provisions the resource. It is only invoked when Lookup reported
	// the resource absent.
	Create func(ctx context.Context) error

	// SettleDelay is a fixed wait applied after a successful create, for
	// resources whose dependents only see them after control plane
	// propagation. It is deliberately a plain sleep, not a readiness poll.
	SettleDelay time.Duration
}

// Runner executes provisioning steps sequentially. With DryRun set, lookups
// still run but creations are reported instead of performed.
type Runner struct {
	clock  clock.Clock
	DryRun bool
}

func NewRunner() *Runner {
	return &Runner{clock: clock.New()}
}

// NewRunnerWithClock is used by tests to avoid real settle delays.
func NewRunnerWithClock(clk clock.Clock) *Runner {
	return &Runner{clock: clk}
}

// Ensure runs a single step and converts its result into an Outcome. Errors
// from the external system are captured in the outcome, never returned, so a
// failing resource does not abort the rest of the run.
func (r *Runner) Ensure(ctx context.Context, step Step) Outcome {
	outcome := Outcome{
		ResourceType: step.ResourceType,
		Name:         step.Name,
	}

	exists, err := step.Lookup(ctx)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Message = err.Error()
		return outcome
	}

	if exists {
		outcome.Status = StatusSkipped
		outcome.Message = "already exists"
		return outcome
	}

	if r.DryRun {
		outcome.Status = StatusSkipped
		outcome.Message = "dry run, create skipped"
		return outcome
	}

	if err := step.Create(ctx); err != nil {
		outcome.Status = StatusFailed
		outcome.Message = err.Error()
		return outcome
	}

	if step.SettleDelay > 0 {
		r.clock.Sleep(step.SettleDelay)
	}

	outcome.Status = StatusCreated
	return outcome
}

// Run executes the steps in order, reporting each outcome as it completes,
// and returns the aggregated summary. A failed step never stops the
// remaining steps and nothing already created is rolled back.
func (r *Runner) Run(ctx context.Context, steps []Step, report func(Outcome)) *Summary {
	summary := NewSummary()

	for _, step := range steps {
		outcome := r.Ensure(ctx, step)
		summary.Add(outcome)
		if report != nil {
			report(outcome)
		}
	}

	return summary
}
