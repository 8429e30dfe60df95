package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/storage"
)

func newTestRepo(t *testing.T) storage.EventRepository {
	t.Helper()
	repo, backend, err := NewMemoryEventRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func makeEvent(callId string, kind core.EventKind, ts time.Time) *core.SecurityEvent {
	return &core.SecurityEvent{
		CallId:        callId,
		Kind:          kind,
		Severity:      core.SeverityHigh,
		DetectionType: "prompt_injection",
		Direction:     core.DirectionInput,
		Message:       "test event",
		Blocked:       true,
		Timestamp:     ts,
	}
}

func TestAppendAssignsIDAndInsertedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	event := makeEvent("call-1", core.EventAttack, time.Now().Add(-time.Minute))
	require.NoError(t, repo.Append(ctx, event))

	assert.NotZero(t, event.Id)
	assert.False(t, event.InsertedAt.IsZero())

	got, err := repo.GetEvent(ctx, event.Id)
	require.NoError(t, err)
	assert.Equal(t, event.CallId, got.CallId)
	assert.Equal(t, event.Kind, got.Kind)
	assert.Equal(t, event.Severity, got.Severity)
}

func TestAppendKeepsAssignedID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	event := makeEvent("call-1", core.EventAudit, time.Now().Add(-time.Minute))
	event.Id = core.IDFromContent("fixed")
	want := event.Id

	require.NoError(t, repo.Append(ctx, event))
	assert.Equal(t, want, event.Id)
}

func TestAppendRejectsInvalidEvent(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Append(context.Background(), &core.SecurityEvent{
		Kind:      core.EventKind(99),
		Timestamp: time.Now().Add(-time.Minute),
	})
	assert.ErrorIs(t, err, core.ErrInvalidSecurityEvent)
}

func TestGetEventNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEvent(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetEventsByCall(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, repo.Append(ctx, makeEvent("call-a", core.EventAttack, base)))
	require.NoError(t, repo.Append(ctx, makeEvent("call-a", core.EventAudit, base.Add(time.Second))))
	require.NoError(t, repo.Append(ctx, makeEvent("call-b", core.EventAudit, base.Add(2*time.Second))))

	events, err := repo.GetEventsByCall(ctx, "call-a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.EventAttack, events[0].Kind)
	assert.Equal(t, core.EventAudit, events[1].Kind)

	_, err = repo.GetEventsByCall(ctx, "")
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestGetEventsByTimeRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, makeEvent("call", core.EventGuardrail, base.Add(time.Duration(i)*time.Minute))))
	}

	// Half-open range: start inclusive, end exclusive.
	events, err := repo.GetEventsByTimeRange(ctx, base.Add(time.Minute), base.Add(3*time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))

	_, err = repo.GetEventsByTimeRange(ctx, base, base.Add(-time.Minute))
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestGetRecentEvents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, makeEvent("call", core.EventGuardrail, base.Add(time.Duration(i)*time.Minute))))
	}

	events, err := repo.GetRecentEvents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp))
	assert.True(t, events[1].Timestamp.After(events[2].Timestamp))

	_, err = repo.GetRecentEvents(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}
