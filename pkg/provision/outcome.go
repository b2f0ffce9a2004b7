// Package provision implements the idempotent check-then-create workflow all
// starter commands share.
//
// Each resource is provisioned independently: existence is decided by a name
// lookup, an existing resource is left untouched and reported Skipped, and a
// failure is recorded without rolling back anything created earlier. Re-running
// is the recovery mechanism.
package provision

type Status string

const (
	StatusCreated Status = "Created"
	StatusSkipped Status = "Skipped"
	StatusFailed  Status = "Failed"
)

// Outcome is the per-resource result of a provisioning step. Outcomes live
// only for the duration of a run; they are aggregated into a Summary and
// discarded at process exit.
type Outcome struct {
	ResourceType string `json:"resourceType"`
	Name         string `json:"name"`
	Status       Status `json:"status"`
	Message      string `json:"message,omitempty"`
}
