package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySchedulerPopsOnlyDueActions(t *testing.T) {
	sched := NewMemoryScheduler()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, sched.Schedule(ctx, Action{ID: "later", Type: ActionFollowUpCall, RunAt: base.Add(time.Hour)}))
	require.NoError(t, sched.Schedule(ctx, Action{ID: "soon", Type: ActionFollowUpCall, RunAt: base.Add(time.Minute)}))

	due, err := sched.Due(ctx, base, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = sched.Due(ctx, base.Add(2*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "soon", due[0].ID)

	// Popped actions do not come back.
	due, err = sched.Due(ctx, base.Add(2*time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	pending := sched.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "later", pending[0].ID)
}

func TestMemorySchedulerOrdersByRunAt(t *testing.T) {
	sched := NewMemoryScheduler()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		offsets := []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour}
		require.NoError(t, sched.Schedule(ctx, Action{ID: id, Type: ActionFollowUpCall, RunAt: base.Add(offsets[i])}))
	}

	due, err := sched.Due(ctx, base.Add(4*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{due[0].ID, due[1].ID, due[2].ID})
}

func TestMemorySchedulerHonorsLimit(t *testing.T) {
	sched := NewMemoryScheduler()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, sched.Schedule(ctx, Action{ID: string(rune('a' + i)), RunAt: base}))
	}

	due, err := sched.Due(ctx, base, 2)
	require.NoError(t, err)
	assert.Len(t, due, 2)
	assert.Len(t, sched.Pending(), 3)
}
