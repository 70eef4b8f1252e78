package booking

import (
	"context"
	"sync"
	"time"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// Query filters booking records. Zero-valued fields match everything.
type Query struct {
	WorkshopID string
	VehicleID  string
	Start      time.Time
	End        time.Time
}

// Store persists the append-only booking ledger and supports querying.
// The in-process scheduler does not depend on the ledger for correctness;
// it is an audit trail, which is why appends are best-effort.
type Store interface {
	Append(ctx context.Context, b model.Booking) error
	Query(ctx context.Context, q Query) ([]model.Booking, error)
	Close() error
}

// MemoryStore keeps the ledger in process memory. State is lost on
// restart, matching the catalog's process-lifetime semantics.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.Booking
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Append adds a booking to the ledger.
func (s *MemoryStore) Append(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	s.records = append(s.records, b)
	s.mu.Unlock()
	return nil
}

// Query returns the bookings matching the filter, in append order.
func (s *MemoryStore) Query(_ context.Context, q Query) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.records {
		if Matches(q, b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory ledger.
func (s *MemoryStore) Close() error { return nil }

// Matches reports whether a booking satisfies the query filter. Shared by
// the store backends.
func Matches(q Query, b model.Booking) bool {
	if q.WorkshopID != "" && b.WorkshopID != q.WorkshopID {
		return false
	}
	if q.VehicleID != "" && b.VehicleID != q.VehicleID {
		return false
	}
	if !q.Start.IsZero() && b.SlotTime.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && b.SlotTime.After(q.End) {
		return false
	}
	return true
}
