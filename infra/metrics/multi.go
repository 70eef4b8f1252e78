package metrics

import coremetrics "github.com/let-the-dreamers-rise/aurorasync-os/core/metrics"

// MultiSink fans scheduling events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBooking forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordBooking(ev coremetrics.BookingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBooking(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordEscalation forwards escalation events to capable sinks.
func (m *MultiSink) RecordEscalation(ev coremetrics.EscalationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.EscalationRecorder); ok {
			if err := rec.RecordEscalation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordWorkshopLoad forwards load updates to capable sinks.
func (m *MultiSink) RecordWorkshopLoad(workshopID string, load float64) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.LoadRecorder); ok {
			if err := rec.RecordWorkshopLoad(workshopID, load); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordNoSlot forwards exhausted-availability events to capable sinks.
func (m *MultiSink) RecordNoSlot(workshopID string) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.NoSlotRecorder); ok {
			if err := rec.RecordNoSlot(workshopID); err != nil {
				return err
			}
		}
	}
	return nil
}
