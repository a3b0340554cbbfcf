package history

import (
	"context"
	"sync"
)

// MemoryBackend keeps history in process memory. LoadErr and SaveErr, when
// set, are returned by the corresponding calls.
type MemoryBackend struct {
	mu      sync.Mutex
	records []Record

	LoadErr error
	SaveErr error
}

// Load returns a copy of the stored records.
func (b *MemoryBackend) Load(_ context.Context) ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.LoadErr != nil {
		return nil, b.LoadErr
	}
	return copyRecords(b.records), nil
}

// Save replaces the stored records.
func (b *MemoryBackend) Save(_ context.Context, records []Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.records = copyRecords(records)
	return nil
}
