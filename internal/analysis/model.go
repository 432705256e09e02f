// Package analysis drives the submission lifecycle for one session: a
// single-flight state machine around assemble + generate, plus a persisted
// history of submission records.
package analysis

import "time"

// State of the session's submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Submission is one persisted submission record. Inputs themselves are never
// persisted; the record keeps only what is needed for history.
type Submission struct {
	ID             string     `json:"id"`
	SessionID      string     `json:"sessionId"`
	Mode           string     `json:"mode"`
	ModuleLabel    string     `json:"moduleLabel,omitempty"`
	Locale         string     `json:"locale"`
	State          string     `json:"state"`
	ResultText     *string    `json:"resultText,omitempty"`
	FailureMessage *string    `json:"failureMessage,omitempty"`
	PartCount      int        `json:"partCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
