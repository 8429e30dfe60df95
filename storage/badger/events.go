// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/storage"
)

// EventRepository implements storage.EventRepository for BadgerDB.
type EventRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository.
func NewEventRepository(backend *Backend) (*EventRepository, error) {
	idSeq, err := backend.GetSequence(eventIDSeq)
	if err != nil {
		return nil, err
	}

	return &EventRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *EventRepository) Close() error {
	return r.idSeq.Release()
}

// Append persists a security event along with its time and call indices.
func (r *EventRepository) Append(ctx context.Context, event *core.SecurityEvent) error {
	if err := core.ValidateSecurityEvent(event); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if event.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			event.Id = core.ID(nextID)
		}
		if event.InsertedAt.IsZero() {
			event.InsertedAt = time.Now().UTC()
		}

		key := makeEventKey(event.Id)
		if err := tx.Set(key, storage.MarshalSecurityEvent(event)); err != nil {
			return err
		}

		timeKey := makeEventTimeKey(event.Timestamp, event.Id)
		if err := tx.Set(timeKey, storage.MarshalID(event.Id)); err != nil {
			return err
		}

		if event.CallId != "" {
			callKey := makeEventCallKey(event.CallId, event.Timestamp, event.Id)
			if err := tx.Set(callKey, storage.MarshalID(event.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetEvent retrieves a single event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id core.ID) (*core.SecurityEvent, error) {
	var result *core.SecurityEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEvent(tx, makeEventKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEventsByCall retrieves all events recorded for one secure call,
// ordered by timestamp ascending.
func (r *EventRepository) GetEventsByCall(ctx context.Context, callId string) ([]*core.SecurityEvent, error) {
	if callId == "" {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SecurityEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialEventCallKey(callId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			event, err := r.readIndexedEvent(tx, iter)
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetEventsByTimeRange retrieves events where start <= Timestamp < end,
// ordered by timestamp ascending.
func (r *EventRepository) GetEventsByTimeRange(ctx context.Context, start, end time.Time) ([]*core.SecurityEvent, error) {
	if end.Before(start) {
		return nil, storage.ErrInvalidQuery
	}
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.SecurityEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialEventTimeKey(start)
		endKey := makePartialEventTimeKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, []byte(eventTimePrefix+":")) {
				break
			}
			if slices.Compare(key, endKey) >= 0 {
				break
			}

			event, err := r.readIndexedEvent(tx, iter)
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentEvents retrieves the N most recent events, ordered by timestamp
// descending.
func (r *EventRepository) GetRecentEvents(ctx context.Context, limit int) ([]*core.SecurityEvent, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SecurityEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible time index key.
		startKey := makePartialEventTimeKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(eventTimePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			event, err := r.readIndexedEvent(tx, iter)
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readIndexedEvent resolves an index entry to the full event record.
func (r *EventRepository) readIndexedEvent(tx *badger.Txn, iter *badger.Iterator) (*core.SecurityEvent, error) {
	var eventID core.ID
	if err := iter.Item().Value(func(val []byte) error {
		var err error
		eventID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.readEvent(tx, makeEventKey(eventID))
}

// readEvent reads an event by primary key. Returns nil when absent.
func (r *EventRepository) readEvent(tx *badger.Txn, key []byte) (*core.SecurityEvent, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var event *core.SecurityEvent
	err = item.Value(func(val []byte) error {
		var err error
		event, err = storage.UnmarshalSecurityEvent(val)
		return err
	})
	return event, err
}
