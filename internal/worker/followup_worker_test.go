package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bafa2024/complaint-hub-beta/internal/clock"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/events"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	"github.com/bafa2024/complaint-hub-beta/internal/scheduler"
)

type staticTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

func (r *staticTicketRepo) Create(context.Context, *domain.Ticket) error { return nil }
func (r *staticTicketRepo) Update(context.Context, *domain.Ticket) error { return nil }

func (r *staticTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := ticket
	return &out, nil
}

func (r *staticTicketRepo) ListWithFilter(context.Context, repository.TicketFilter) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *staticTicketRepo) ListForAnalytics(context.Context, string, *time.Time, *time.Time) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *staticTicketRepo) IncrementViewCount(context.Context, string) error { return nil }

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func TestTickRaisesFollowUpForResolvedTicket(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(base)
	resolvedAt := base.Add(-24 * time.Hour)

	repo := &staticTicketRepo{tickets: map[string]domain.Ticket{
		"ticket-1": {
			ID:         "ticket-1",
			BrandID:    "brand-1",
			Status:     domain.TicketStatusResolved,
			ResolvedAt: &resolvedAt,
		},
	}}
	sched := scheduler.NewMemoryScheduler()
	dispatcher := &recordingDispatcher{}
	require.NoError(t, sched.Schedule(context.Background(), scheduler.Action{
		ID:      "action-1",
		Type:    scheduler.ActionFollowUpCall,
		RunAt:   base.Add(-time.Minute),
		Payload: map[string]string{"ticket_id": "ticket-1", "brand_id": "brand-1"},
	}))

	w := NewFollowUpWorker(sched, repo, dispatcher, clk, nil, time.Second)
	require.NoError(t, w.Tick(context.Background()))

	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, events.EventTicketFollowUpDue, event.Type)
	assert.Equal(t, "ticket-1", event.TicketID)
	assert.True(t, event.Actor.System)
}

func TestTickDropsFollowUpForReopenedTicket(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(base)

	repo := &staticTicketRepo{tickets: map[string]domain.Ticket{
		"ticket-1": {
			ID:      "ticket-1",
			BrandID: "brand-1",
			Status:  domain.TicketStatusNew,
		},
	}}
	sched := scheduler.NewMemoryScheduler()
	dispatcher := &recordingDispatcher{}
	require.NoError(t, sched.Schedule(context.Background(), scheduler.Action{
		ID:      "action-1",
		Type:    scheduler.ActionFollowUpCall,
		RunAt:   base.Add(-time.Minute),
		Payload: map[string]string{"ticket_id": "ticket-1"},
	}))

	w := NewFollowUpWorker(sched, repo, dispatcher, clk, nil, time.Second)
	require.NoError(t, w.Tick(context.Background()))

	assert.Empty(t, dispatcher.events, "reopened ticket must not trigger a follow-up")
	assert.Empty(t, sched.Pending(), "the stale action is consumed, not requeued")
}

func TestTickIgnoresMissingTicketsAndUnknownActions(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(base)

	repo := &staticTicketRepo{tickets: map[string]domain.Ticket{}}
	sched := scheduler.NewMemoryScheduler()
	dispatcher := &recordingDispatcher{}
	ctx := context.Background()

	require.NoError(t, sched.Schedule(ctx, scheduler.Action{
		ID: "gone", Type: scheduler.ActionFollowUpCall, RunAt: base.Add(-time.Minute),
		Payload: map[string]string{"ticket_id": "deleted"},
	}))
	require.NoError(t, sched.Schedule(ctx, scheduler.Action{
		ID: "odd", Type: "unknown_action", RunAt: base.Add(-time.Minute),
	}))

	w := NewFollowUpWorker(sched, repo, dispatcher, clk, nil, time.Second)
	require.NoError(t, w.Tick(ctx))
	assert.Empty(t, dispatcher.events)
}
