package bookinglog

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// JSONLStore appends bookings to a JSONL file, one record per line.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file if needed and returns the store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes the booking to the file.
func (s *JSONLStore) Append(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(b)
}

// Query scans the file and returns matching bookings. Corrupt lines are
// skipped.
func (s *JSONLStore) Query(_ context.Context, q booking.Query) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var res []model.Booking
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var b model.Booking
		if err := json.Unmarshal(scanner.Bytes(), &b); err != nil {
			continue
		}
		if booking.Matches(q, b) {
			res = append(res, b)
		}
	}
	return res, scanner.Err()
}

// Close is a no-op; the file is opened per operation.
func (s *JSONLStore) Close() error { return nil }
