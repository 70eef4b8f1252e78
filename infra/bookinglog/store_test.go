package bookinglog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

func sampleBooking(id, workshop, vehicle string) model.Booking {
	return model.Booking{
		BookingID:   id,
		WorkshopID:  workshop,
		VehicleID:   vehicle,
		SlotTime:    time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		ServiceType: "brake_system",
		Status:      model.BookingConfirmed,
		CreatedAt:   time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestJSONLStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.log")
	s, err := NewJSONLStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-1", "ws-a", "VH-1")))
	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-2", "ws-b", "VH-2")))

	all, err := s.Query(ctx, booking.Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := s.Query(ctx, booking.Query{WorkshopID: "ws-b"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "BOOK-2", filtered[0].BookingID)

	require.NoError(t, s.Close())
}

func TestJSONLStore_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.log")
	s, err := NewJSONLStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-1", "ws-a", "VH-1")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-2", "ws-a", "VH-2")))

	all, err := s.Query(ctx, booking.Query{})
	require.NoError(t, err)
	require.Len(t, all, 2, "corrupt line must be skipped")
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	ctx := context.Background()
	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-1", "ws-a", "VH-1")))
	require.NoError(t, s.Append(ctx, sampleBooking("BOOK-2", "ws-a", "VH-2")))

	byVehicle, err := s.Query(ctx, booking.Query{VehicleID: "VH-2"})
	require.NoError(t, err)
	require.Len(t, byVehicle, 1)
	require.Equal(t, "BOOK-2", byVehicle[0].BookingID)
	require.Equal(t, model.BookingConfirmed, byVehicle[0].Status)

	windowed, err := s.Query(ctx, booking.Query{
		Start: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 23, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, windowed, 2)
}

func TestFactory(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	require.Equal(t, "memory", cfg.Backend)
	require.Equal(t, "bookings.log", cfg.Path)
	require.NoError(t, cfg.Validate())
	require.Error(t, Config{Backend: "redis"}.Validate())

	store, err := New(Config{Backend: "jsonl", Path: filepath.Join(t.TempDir(), "b.log")})
	require.NoError(t, err)
	require.IsType(t, &JSONLStore{}, store)

	_, err = New(Config{Backend: "redis"})
	require.Error(t, err)
}
