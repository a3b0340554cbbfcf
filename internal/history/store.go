package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrStoreCorrupted indicates stored history exists but cannot be decoded.
// Store treats it as an empty history.
var ErrStoreCorrupted = errors.New("history storage corrupted")

// Backend loads and saves the full record list, newest first.
// Load returns an empty list and no error when nothing is stored yet.
type Backend interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// Updater is implemented by backends that can run a load-modify-save
// cycle atomically with respect to other processes. fn receives the stored
// records, or the load error, and returns the records to save.
type Updater interface {
	Update(ctx context.Context, fn func(current []Record, loadErr error) []Record) error
}

// Store is the bounded recent-trip list.
type Store struct {
	mu      sync.Mutex
	backend Backend
	limit   int
}

// NewStore creates a Store over backend, keeping MaxRecords entries.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, limit: MaxRecords}
}

// Recent returns the stored records, newest first. Missing or unreadable
// storage yields an empty list; the failure is logged, never returned.
func (s *Store) Recent(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Add prepends rec, truncates the list to the cap, persists it and returns
// the updated list. Only a failing write is reported as an error.
func (s *Store) Add(ctx context.Context, rec Record) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current, updated []Record
	var err error
	if u, ok := s.backend.(Updater); ok {
		err = u.Update(ctx, func(loaded []Record, loadErr error) []Record {
			current = s.usable(ctx, loaded, loadErr)
			updated = s.prepend(current, rec)
			return updated
		})
	} else {
		current = s.loadLocked(ctx)
		updated = s.prepend(current, rec)
		err = s.backend.Save(ctx, updated)
	}
	if err != nil {
		return current, fmt.Errorf("saving trip history: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "history").
		Str("record_id", rec.ID).
		Int("count", len(updated)).
		Msg("trip saved to history")

	return copyRecords(updated), nil
}

func (s *Store) prepend(current []Record, rec Record) []Record {
	updated := make([]Record, 0, min(len(current)+1, s.limit))
	updated = append(updated, rec)
	for _, r := range current {
		if len(updated) >= s.limit {
			break
		}
		updated = append(updated, r)
	}
	return updated
}

// Clear removes every stored record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, nil); err != nil {
		return fmt.Errorf("clearing trip history: %w", err)
	}
	return nil
}

func (s *Store) loadLocked(ctx context.Context) []Record {
	records, err := s.backend.Load(ctx)
	return s.usable(ctx, records, err)
}

// usable maps a load result to the list the store works with: a failed
// load is an empty history.
func (s *Store) usable(ctx context.Context, records []Record, err error) []Record {
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Str("component", "history").
			Err(err).
			Msg("trip history unavailable, starting empty")
		return []Record{}
	}
	if len(records) > s.limit {
		records = records[:s.limit]
	}
	return copyRecords(records)
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
