package metrics

import (
	"time"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// BookingEvent is a per-appointment record for observability sinks.
type BookingEvent struct {
	BookingID  string
	WorkshopID string
	VehicleID  string
	Component  string
	Severity   model.Severity
	Emergency  bool
	Fallback   bool
	MatchScore float64
	SlotTime   time.Time
	Latency    time.Duration
	Time       time.Time
}

// MetricsSink records scheduling outcomes for observability purposes.
type MetricsSink interface {
	RecordBooking(ev BookingEvent) error
}

// EscalationEvent captures an escalation raised by the policy engine.
type EscalationEvent struct {
	EscalationID string
	Component    string
	Severity     model.Severity
	Probability  float64
	Time         time.Time
}

// EscalationRecorder is implemented by sinks able to record escalations.
type EscalationRecorder interface {
	RecordEscalation(ev EscalationEvent) error
}

// LoadRecorder is implemented by sinks able to record workshop load.
type LoadRecorder interface {
	RecordWorkshopLoad(workshopID string, load float64) error
}

// NoSlotRecorder is implemented by sinks able to record exhausted
// availability.
type NoSlotRecorder interface {
	RecordNoSlot(workshopID string) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordBooking(BookingEvent) error         { return nil }
func (NopSink) RecordEscalation(EscalationEvent) error   { return nil }
func (NopSink) RecordWorkshopLoad(string, float64) error { return nil }
func (NopSink) RecordNoSlot(string) error                { return nil }
