package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/clock"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/events"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	"github.com/bafa2024/complaint-hub-beta/internal/scheduler"
)

const dueBatchSize = 50

// FollowUpWorker drains the scheduler queue and raises follow-up events
// for tickets resolved long enough ago. A reopened ticket's pending
// follow-up is dropped, not rescheduled.
type FollowUpWorker struct {
	sched      scheduler.Scheduler
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	clk        clock.Clock
	logger     *zap.Logger
	interval   time.Duration
}

// NewFollowUpWorker constructs the worker.
func NewFollowUpWorker(sched scheduler.Scheduler, tickets repository.TicketRepository, dispatcher events.Dispatcher, clk clock.Clock, logger *zap.Logger, interval time.Duration) *FollowUpWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.System()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &FollowUpWorker{
		sched:      sched,
		tickets:    tickets,
		dispatcher: dispatcher,
		clk:        clk,
		logger:     logger,
		interval:   interval,
	}
}

// Run polls for due actions until the context is cancelled.
func (w *FollowUpWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Tick(ctx); err != nil {
				w.logger.Warn("follow-up tick failed", zap.Error(err))
			}
		}
	}
}

// Tick processes one batch of due actions.
func (w *FollowUpWorker) Tick(ctx context.Context) error {
	due, err := w.sched.Due(ctx, w.clk.Now(), dueBatchSize)
	if err != nil {
		return err
	}
	for _, action := range due {
		w.handle(ctx, action)
	}
	return nil
}

func (w *FollowUpWorker) handle(ctx context.Context, action scheduler.Action) {
	if action.Type != scheduler.ActionFollowUpCall {
		w.logger.Warn("unknown action type", zap.String("type", action.Type))
		return
	}
	ticketID := action.Payload["ticket_id"]
	if ticketID == "" {
		return
	}

	ticket, err := w.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return
		}
		w.logger.Warn("follow-up load failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return
	}
	// Reopened since resolution; the follow-up no longer applies.
	if ticket.Status != domain.TicketStatusResolved || ticket.ResolvedAt == nil {
		return
	}

	_ = w.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketFollowUpDue,
		TicketID:  ticket.ID,
		BrandID:   ticket.BrandID,
		Actor:     events.Actor{System: true},
		Timestamp: w.clk.Now(),
		Payload:   events.TicketFollowUpDuePayload{ResolvedAt: *ticket.ResolvedAt},
	})
	w.logger.Info("follow-up due", zap.String("ticket_id", ticket.ID))
}
