// Package history keeps a short, newest-first list of past trip
// comparisons.
//
// The Store owns the bounded-list semantics (prepend, cap at MaxRecords)
// and serializes its read-modify-write cycle. Where the list lives is
// decided by an injected Backend: a JSON file, an SQLite database, or
// memory for tests. Unreadable storage is never surfaced to the user; it
// is treated as an empty history.
package history

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecotrip/internal/engine"
)

// MaxRecords is the number of trips kept.
const MaxRecords = 6

// Record is one remembered comparison. Records are never mutated after
// creation.
type Record struct {
	ID           string    `json:"id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Distance     float64   `json:"distance"`
	BestLabel    string    `json:"best_label"`
	BestEmission float64   `json:"best_emission"`
	TripType     string    `json:"trip_type"`
	PurposeLabel string    `json:"purpose_label"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRecord builds a record for a comparison. Blank endpoint labels fall
// back to the engine defaults.
func NewRecord(cmp engine.Comparison, from, to string) Record {
	best, _ := cmp.Best()
	return Record{
		ID:           ulid.Make().String(),
		From:         engine.EndpointLabel(from, engine.DefaultFromLabel),
		To:           engine.EndpointLabel(to, engine.DefaultToLabel),
		Distance:     engine.RoundDistance(cmp.DistanceKm),
		BestLabel:    best.Label,
		BestEmission: best.EmissionKg,
		TripType:     cmp.TripType.Label(),
		PurposeLabel: cmp.Purpose.Label(),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}
