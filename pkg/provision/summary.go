package provision

import (
	"fmt"
	"io"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/output"
	"go.uber.org/multierr"
)

// Summary accumulates per-resource outcomes over a run.
type Summary struct {
	Resources []Outcome `json:"resources"`
	Created   int       `json:"created"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

func NewSummary() *Summary {
	return &Summary{Resources: []Outcome{}}
}

func (s *Summary) Add(outcome Outcome) {
	s.Resources = append(s.Resources, outcome)

	switch outcome.Status {
	case StatusCreated:
		s.Created++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Merge folds another summary into this one.
func (s *Summary) Merge(other *Summary) {
	for _, outcome := range other.Resources {
		s.Add(outcome)
	}
}

// ExitCode implements the process exit contract: a run succeeds unless at
// least one resource failed. A run where everything already existed is a
// success.
func (s *Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}

	return 0
}

// Err aggregates the failure messages, or nil when nothing failed.
func (s *Summary) Err() error {
	var err error
	for _, outcome := range s.Resources {
		if outcome.Status == StatusFailed {
			err = multierr.Append(err, fmt.Errorf("%s %s: %s", outcome.ResourceType, outcome.Name, outcome.Message))
		}
	}

	return err
}

// RenderText writes the human readable summary block.
func (s *Summary) RenderText(writer io.Writer) error {
	for _, outcome := range s.Resources {
		var status string
		switch outcome.Status {
		case StatusCreated:
			status = output.WithSuccessFormat("%-7s", outcome.Status)
		case StatusSkipped:
			status = output.WithWarningFormat("%-7s", outcome.Status)
		case StatusFailed:
			status = output.WithErrorFormat("%-7s", outcome.Status)
		}

		line := fmt.Sprintf("  %s %s %s", status, outcome.ResourceType, outcome.Name)
		if outcome.Message != "" && outcome.Status != StatusCreated {
			line += output.WithGrayFormat(" (%s)", outcome.Message)
		}

		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(
		writer,
		"\nCreated: %d, Skipped: %d, Failed: %d\n",
		s.Created, s.Skipped, s.Failed)
	return err
}

var _ output.TextRenderer = (*Summary)(nil)
