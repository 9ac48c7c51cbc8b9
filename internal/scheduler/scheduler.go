package scheduler

import (
	"context"
	"time"
)

// Action types understood by the follow-up worker.
const (
	ActionFollowUpCall = "follow_up_call"
)

// Action is a deferred unit of work. Payload keys are action-specific.
type Action struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	RunAt   time.Time         `json:"run_at"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Scheduler enqueues deferred actions. Callers only request execution;
// they never wait for it. Execution and retry belong to the worker that
// drains the queue.
type Scheduler interface {
	Schedule(ctx context.Context, action Action) error
	// Due pops up to limit actions whose RunAt is not after now.
	Due(ctx context.Context, now time.Time, limit int) ([]Action, error)
}
