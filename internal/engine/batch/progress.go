package batch

import (
	"sync"
	"time"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress tracks how many trips of a batch have been evaluated.
// It is safe for concurrent use.
type Progress struct {
	totalItems     int
	processedItems int
	failedItems    int
	startTime      time.Time
	lastUpdateTime time.Time

	mu sync.RWMutex
}

// NewProgress creates a tracker for totalItems trips.
func NewProgress(totalItems int) *Progress {
	now := time.Now()
	return &Progress{
		totalItems:     totalItems,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// AddProcessed records one finished trip.
func (p *Progress) AddProcessed(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems++
	if failed {
		p.failedItems++
	}
	p.lastUpdateTime = time.Now()
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)
	return ProgressSnapshot{
		TotalItems:         p.totalItems,
		ProcessedItems:     p.processedItems,
		FailedItems:        p.failedItems,
		PercentComplete:    p.percentCompleteUnsafe(),
		Complete:           p.processedItems >= p.totalItems,
		ElapsedTime:        elapsed,
		EstimatedRemaining: p.remainingUnsafe(elapsed),
		LastUpdateTime:     p.lastUpdateTime,
	}
}

// ProgressSnapshot is an immutable view of Progress.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	FailedItems     int
	PercentComplete float64
	Complete        bool
	ElapsedTime     time.Duration
	// EstimatedRemaining extrapolates from the average time per trip. It is
	// 0 before the first trip finishes.
	EstimatedRemaining time.Duration
	LastUpdateTime     time.Time
}

// remainingUnsafe must be called with the lock held.
func (p *Progress) remainingUnsafe(elapsed time.Duration) time.Duration {
	if p.processedItems == 0 || p.processedItems >= p.totalItems {
		return 0
	}
	avg := elapsed / time.Duration(p.processedItems)
	return avg * time.Duration(p.totalItems-p.processedItems)
}

// percentCompleteUnsafe must be called with the lock held.
func (p *Progress) percentCompleteUnsafe() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return (float64(p.processedItems) / float64(p.totalItems)) * percentMultiplier
}
