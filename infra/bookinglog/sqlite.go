package bookinglog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// SQLiteStore persists bookings to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS bookings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        booking_id TEXT,
        workshop_id TEXT,
        vehicle_id TEXT,
        slot_ts INTEGER,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the booking to the database.
func (s *SQLiteStore) Append(ctx context.Context, b model.Booking) error {
	rec, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bookings (booking_id, workshop_id, vehicle_id, slot_ts, record) VALUES (?, ?, ?, ?, ?)`,
		b.BookingID, b.WorkshopID, b.VehicleID, b.SlotTime.Unix(), string(rec))
	return err
}

// Query returns the bookings matching the filter.
func (s *SQLiteStore) Query(ctx context.Context, q booking.Query) ([]model.Booking, error) {
	query := `SELECT record FROM bookings WHERE 1=1`
	var args []any
	if q.WorkshopID != "" {
		query += ` AND workshop_id = ?`
		args = append(args, q.WorkshopID)
	}
	if q.VehicleID != "" {
		query += ` AND vehicle_id = ?`
		args = append(args, q.VehicleID)
	}
	if !q.Start.IsZero() {
		query += ` AND slot_ts >= ?`
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		query += ` AND slot_ts <= ?`
		args = append(args, q.End.Unix())
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []model.Booking
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var b model.Booking
		if err := json.Unmarshal([]byte(rec), &b); err != nil {
			continue
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
