package storage

import (
	"context"
	"time"

	"github.com/poiesic/rampart/core"
)

// EventRepository provides append-mostly storage for security events.
// Implementations must be thread-safe and support concurrent access.
type EventRepository interface {
	// Append persists a security event.
	// For events with ID=0, generates a new ID from sequence.
	// Sets InsertedAt if not already set.
	Append(ctx context.Context, event *core.SecurityEvent) error

	// GetEvent retrieves a single event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	GetEvent(ctx context.Context, id core.ID) (*core.SecurityEvent, error)

	// GetEventsByCall retrieves all events recorded for one secure call,
	// ordered by timestamp ascending.
	GetEventsByCall(ctx context.Context, callId string) ([]*core.SecurityEvent, error)

	// GetEventsByTimeRange retrieves events within a time range.
	// Returns events where start <= Timestamp < end, ordered by timestamp.
	GetEventsByTimeRange(ctx context.Context, start, end time.Time) ([]*core.SecurityEvent, error)

	// GetRecentEvents retrieves the N most recent events, ordered by
	// timestamp descending.
	GetRecentEvents(ctx context.Context, limit int) ([]*core.SecurityEvent, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
