package model

import "time"

// BookingStatus is the lifecycle state of a booking. Only confirmed is
// produced today; the enum leaves room for cancellation flows.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed appointment, append-only per workshop. No two
// bookings may share (WorkshopID, SlotTime).
type Booking struct {
	BookingID   string        `json:"booking_id"`
	WorkshopID  string        `json:"workshop_id"`
	SlotTime    time.Time     `json:"slot_time"`
	VehicleID   string        `json:"vehicle_id"`
	ServiceType string        `json:"service_type"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
