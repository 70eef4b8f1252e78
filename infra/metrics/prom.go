package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/let-the-dreamers-rise/aurorasync-os/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	bookings    *prometheus.CounterVec
	escalations *prometheus.CounterVec
	noSlots     *prometheus.CounterVec
	latency     prometheus.Histogram
	load        *prometheus.GaugeVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_bookings_total",
			Help: "Total number of booked appointments",
		}, []string{"workshop_id", "severity", "emergency"}),
		escalations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_escalations_total",
			Help: "Total number of escalations raised",
		}, []string{"component", "severity"}),
		noSlots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_no_slot_total",
			Help: "Scheduling requests that found no available slot",
		}, []string{"workshop_id"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scheduling_request_duration_seconds",
			Help:    "Time spent handling a scheduling request",
			Buckets: prometheus.DefBuckets,
		}),
		load: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "workshop_current_load",
			Help: "Current load fraction per workshop",
		}, []string{"workshop_id"}),
	}

	for _, c := range []prometheus.Collector{s.bookings, s.escalations, s.noSlots, s.latency, s.load} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordBooking increments the booking counter and observes the request
// latency.
func (s *PromSink) RecordBooking(ev coremetrics.BookingEvent) error {
	s.bookings.WithLabelValues(ev.WorkshopID, ev.Severity.String(), strconv.FormatBool(ev.Emergency)).Inc()
	s.latency.Observe(ev.Latency.Seconds())
	return nil
}

// RecordEscalation increments the escalation counter.
func (s *PromSink) RecordEscalation(ev coremetrics.EscalationEvent) error {
	s.escalations.WithLabelValues(ev.Component, ev.Severity.String()).Inc()
	return nil
}

// RecordWorkshopLoad sets the load gauge for a workshop.
func (s *PromSink) RecordWorkshopLoad(workshopID string, load float64) error {
	s.load.WithLabelValues(workshopID).Set(load)
	return nil
}

// RecordNoSlot increments the exhausted-availability counter.
func (s *PromSink) RecordNoSlot(workshopID string) error {
	s.noSlots.WithLabelValues(workshopID).Inc()
	return nil
}
