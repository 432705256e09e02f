package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"geovision-backend/internal/assemble"
	"geovision-backend/internal/encode"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/locale"
	"geovision-backend/internal/shared/metrics"
	"geovision-backend/internal/shared/telemetry"
)

// ControllerConfig bundles the collaborators for one session's controller.
// Snapshot and Locale are read at submission time; OnSubmit fires once per
// accepted submission, before the request is built.
type ControllerConfig struct {
	SessionID  string
	Assembler  *assemble.Assembler
	Client     llm.Client
	Repo       Repo
	Configured bool
	Snapshot   func() inputs.Snapshot
	Locale     func() locale.Locale
	OnSubmit   func()
}

// Controller is the per-session submission state machine. At most one
// submission runs at a time; a second Submit while one is in flight is
// rejected without side effects.
type Controller struct {
	cfg ControllerConfig

	mu           sync.Mutex
	state        State
	result       string
	failure      string
	submissionID string
}

// NewController constructs a Controller in the idle state.
func NewController(cfg ControllerConfig) *Controller {
	return &Controller{cfg: cfg, state: StateIdle}
}

// Status is the externally visible controller state.
type Status struct {
	State        State  `json:"state"`
	SubmissionID string `json:"submissionId,omitempty"`
	Result       string `json:"result,omitempty"`
	Failure      string `json:"failure,omitempty"`
}

// Status returns the current state, last result and last failure message.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:        c.state,
		SubmissionID: c.submissionID,
		Result:       c.result,
		Failure:      c.failure,
	}
}

// Submit starts a submission. The input snapshot and locale are captured
// synchronously so edits made while the request is in flight cannot leak in.
// A missing backend credential is reported immediately, before any state
// transition. ErrInFlight is returned while a submission is running.
func (c *Controller) Submit(ctx context.Context, mode assemble.Mode) (string, error) {
	if !c.cfg.Configured || c.cfg.Client == nil {
		return "", llm.ErrNotConfigured
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return "", ErrInFlight
	}
	id := uuid.NewString()
	from := c.state
	c.state = StateSubmitting
	c.result = ""
	c.failure = ""
	c.submissionID = id
	c.mu.Unlock()

	snap := c.cfg.Snapshot()
	loc := c.cfg.Locale()

	if c.cfg.OnSubmit != nil {
		c.cfg.OnSubmit()
	}

	sub := Submission{
		ID:          id,
		SessionID:   c.cfg.SessionID,
		Mode:        string(mode.Kind),
		ModuleLabel: mode.ModuleLabel,
		Locale:      string(loc),
		State:       string(StateSubmitting),
		CreatedAt:   time.Now().UTC(),
	}
	if c.cfg.Repo != nil {
		if err := c.cfg.Repo.Create(ctx, sub); err != nil {
			// History is best-effort; the submission itself proceeds.
			telemetry.Warn("submission.record_failed", map[string]any{
				"submission_id": id,
				"error":         err.Error(),
			})
		}
	}

	metrics.IncSubmissionStarted()
	telemetry.Info("submission.status", map[string]any{
		"session_id":       c.cfg.SessionID,
		"submission_id":    id,
		"mode":             string(mode.Kind),
		"state_transition": fmt.Sprintf("%s->%s", from, StateSubmitting),
	})

	go c.completeAsync(context.WithoutCancel(ctx), id, snap, loc, mode)
	return id, nil
}

func (c *Controller) completeAsync(ctx context.Context, id string, snap inputs.Snapshot, loc locale.Locale, mode assemble.Mode) {
	table := locale.For(loc)
	startedAt := time.Now().UTC()

	defer func() {
		if r := recover(); r != nil {
			c.fail(ctx, id, table.GenericFailure, fmt.Errorf("panic: %v", r), startedAt, 0)
		}
	}()

	req, err := c.cfg.Assembler.BuildRequest(ctx, snap, loc, mode)
	if err != nil {
		msg := table.GenericFailure
		if encErr, ok := encode.AsError(err); ok {
			msg = encErr.Error()
		}
		c.fail(ctx, id, msg, err, startedAt, 0)
		return
	}

	text, err := c.cfg.Client.Generate(ctx, req)
	if err != nil {
		c.fail(ctx, id, table.GenericFailure, err, startedAt, len(req.Parts))
		return
	}

	c.succeed(ctx, id, text, startedAt, len(req.Parts))
}

func (c *Controller) succeed(ctx context.Context, id, text string, startedAt time.Time, partCount int) {
	completedAt := time.Now().UTC()

	c.mu.Lock()
	if c.submissionID != id {
		c.mu.Unlock()
		return
	}
	c.state = StateSucceeded
	c.result = text
	c.failure = ""
	c.mu.Unlock()

	if c.cfg.Repo != nil {
		if err := c.cfg.Repo.Complete(ctx, id, StateSucceeded, text, "", partCount, completedAt); err != nil {
			telemetry.Warn("submission.record_failed", map[string]any{
				"submission_id": id,
				"error":         err.Error(),
			})
		}
	}

	metrics.IncSubmissionSucceeded()
	metrics.ObserveSubmissionDurationMs(float64(completedAt.Sub(startedAt).Milliseconds()))
	telemetry.Info("submission.status", map[string]any{
		"session_id":       c.cfg.SessionID,
		"submission_id":    id,
		"part_count":       partCount,
		"state_transition": "submitting->succeeded",
	})
}

func (c *Controller) fail(ctx context.Context, id, message string, cause error, startedAt time.Time, partCount int) {
	completedAt := time.Now().UTC()

	c.mu.Lock()
	if c.submissionID != id {
		c.mu.Unlock()
		return
	}
	c.state = StateFailed
	c.result = ""
	c.failure = message
	c.mu.Unlock()

	if c.cfg.Repo != nil {
		if err := c.cfg.Repo.Complete(ctx, id, StateFailed, "", message, partCount, completedAt); err != nil {
			telemetry.Warn("submission.record_failed", map[string]any{
				"submission_id": id,
				"error":         err.Error(),
			})
		}
	}

	metrics.IncSubmissionFailed()
	metrics.ObserveSubmissionDurationMs(float64(completedAt.Sub(startedAt).Milliseconds()))
	telemetry.Error("submission.failed", map[string]any{
		"session_id":       c.cfg.SessionID,
		"submission_id":    id,
		"error":            cause.Error(),
		"state_transition": "submitting->failed",
	})
}
