package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/escalation"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/forecast"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/metrics"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/slot"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/workshop"
	"github.com/let-the-dreamers-rise/aurorasync-os/internal/eventbus"
	"github.com/let-the-dreamers-rise/aurorasync-os/internal/keyedmutex"
)

// Load deltas applied to a workshop after a booking.
const (
	normalLoadDelta    = 0.10
	emergencyLoadDelta = 0.15
)

// Scheduler orchestrates escalation evaluation, workshop selection, demand
// forecasting and slot allocation into a single scheduling call.
type Scheduler struct {
	workshops  *workshop.Manager
	slots      *slot.Manager
	forecaster *forecast.Forecaster
	escalation *escalation.Engine

	locks        *keyedmutex.KeyedMutex
	bookingCount atomic.Int64

	sink metrics.MetricsSink
	bus  eventbus.EventBus
	now  func() time.Time
	log  logger.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMetrics attaches a metrics sink.
func WithMetrics(sink metrics.MetricsSink) Option {
	return func(s *Scheduler) { s.sink = sink }
}

// WithEventBus attaches an event bus on which booking and escalation
// events are published.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Scheduler) { s.bus = bus }
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New wires the scheduler from its four collaborators. All of them are
// required; there is no hidden global fallback.
func New(workshops *workshop.Manager, slots *slot.Manager, forecaster *forecast.Forecaster, engine *escalation.Engine, log logger.Logger, opts ...Option) (*Scheduler, error) {
	if workshops == nil || slots == nil || forecaster == nil || engine == nil {
		return nil, fmt.Errorf("scheduler: nil collaborator provided to New")
	}
	if log == nil {
		log = logger.Nop{}
	}
	s := &Scheduler{
		workshops:  workshops,
		slots:      slots,
		forecaster: forecaster,
		escalation: engine,
		locks:      keyedmutex.New(),
		sink:       metrics.NopSink{},
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BookingCount returns the number of scheduling requests handled so far.
func (s *Scheduler) BookingCount() int64 { return s.bookingCount.Load() }

// ScheduleAppointment turns a predicted component failure into a booked
// appointment. The only error outcome is the structured no-available-slots
// result; every other path returns a success result. Bookkeeping after a
// successful booking (load update, emergency slot, metrics, events) is
// best-effort and never undoes the booking.
func (s *Scheduler) ScheduleAppointment(req model.AppointmentRequest) model.AppointmentResult {
	start := s.now()
	n := s.bookingCount.Add(1)
	s.log.Infof("scheduling request #%d: %s - %s (%s, %.2f)", n, req.VehicleID, req.Component, req.RiskLevel, req.Probability)

	dec := s.escalation.Evaluate(req.RiskLevel, req.Component, req.Probability)
	s.log.Infof("escalation: %s - %s", dec.Severity, dec.Reasoning)
	if dec.ShouldEscalate {
		s.recordEscalation(req, dec)
	}

	isEmergency := dec.Severity >= model.SeverityCritical
	shouldOverride := dec.OverridePreferences

	preferredCity := ""
	if req.Preferences != nil && !shouldOverride {
		preferredCity = req.Preferences.PreferredCity
	}
	if preferredCity == "" {
		preferredCity = req.VehicleLocation
	}

	sel := s.workshops.FindBest(req.Component, req.RiskLevel, isEmergency, preferredCity)
	ws := sel.Workshop
	s.log.Infof("selected workshop: %s - %s", ws.ID, sel.Reasoning)

	rec := s.forecaster.PredictOptimalSlot(ws.ID, req.Component, req.RiskLevel)

	prefs := req.Preferences
	if shouldOverride {
		prefs = nil
	}

	// Serialize slot search and booking per workshop so two concurrent
	// requests cannot observe the same free hour.
	s.locks.Lock(ws.ID)
	defer s.locks.Unlock(ws.ID)

	chosen, ok := s.slots.FindOptimal(ws, req.RiskLevel, prefs, isEmergency)
	if !ok {
		s.log.Warnf("no available slots at %s for %s", ws.ID, req.VehicleID)
		s.recordNoSlot(ws.ID)
		return model.AppointmentResult{
			Status:     "error",
			Error:      "no available slots found",
			WorkshopID: ws.ID,
			Priority:   dec.Severity,
		}
	}

	bk, err := s.slots.Book(ws.ID, chosen.Time, req.VehicleID, req.Component)
	if err != nil {
		// Unreachable while the per-workshop lock is held; treated as the
		// no-availability outcome rather than a fault.
		s.log.Errorf("booking failed at %s: %v", ws.ID, err)
		return model.AppointmentResult{
			Status:     "error",
			Error:      "no available slots found",
			WorkshopID: ws.ID,
			Priority:   dec.Severity,
		}
	}

	delta := normalLoadDelta
	if isEmergency {
		delta = emergencyLoadDelta
	}
	s.workshops.UpdateLoad(ws.ID, delta)
	if isEmergency && !s.workshops.UseEmergencySlot(ws.ID) {
		s.log.Warnf("emergency slots exhausted at %s, booking kept", ws.ID)
	}

	res := s.compose(req, dec, sel, rec, chosen, bk, shouldOverride, isEmergency)
	s.recordBooking(req, dec, sel, chosen, bk, isEmergency, start)
	if s.bus != nil {
		s.bus.Publish(eventbus.BookingConfirmed{Result: res})
	}
	return res
}

func (s *Scheduler) compose(req model.AppointmentRequest, dec model.EscalationDecision, sel workshop.Selection, rec model.SlotRecommendation, chosen model.Slot, bk model.Booking, overridden, isEmergency bool) model.AppointmentResult {
	ws := sel.Workshop
	return model.AppointmentResult{
		Status:    "success",
		BookingID: bk.BookingID,
		VehicleID: bk.VehicleID,
		AssignedWorkshop: model.AssignedWorkshop{
			ID:       ws.ID,
			Name:     ws.Name,
			City:     ws.City,
			Address:  fmt.Sprintf("%s, %s", ws.Name, ws.City),
			Phone:    ws.Phone,
			Rating:   ws.Rating,
			Fallback: sel.Fallback,
		},
		Slot: model.SlotSummary{
			Date:              chosen.Time.Format("2006-01-02"),
			Time:              chosen.Time.Format("15:04"),
			DateTime:          chosen.Time,
			Type:              chosen.Type,
			IsEmergency:       isEmergency,
			EstimatedDuration: chosen.EstimatedDuration,
		},
		Priority: dec.Severity,
		Escalation: model.EscalationSummary{
			Severity:             dec.Severity,
			ShouldEscalate:       dec.ShouldEscalate,
			RecommendedTimeframe: dec.RecommendedTimeframe,
			Actions:              dec.Actions,
			EscalationID:         dec.EscalationID,
		},
		Reasoning: model.Reasoning{
			WorkshopSelection: sel.Reasoning,
			Escalation:        dec.Reasoning,
			DemandForecast:    rec.Reasoning,
			SlotMatchScore:    chosen.MatchScore,
		},
		SafetyAssessment:   s.escalation.CheckSafetyToDrive(req.Component, req.Probability, dec.Severity),
		DemandForecast:     rec,
		PreferencesHonored: !overridden,
		CreatedAt:          s.now(),
	}
}

func (s *Scheduler) recordEscalation(req model.AppointmentRequest, dec model.EscalationDecision) {
	if s.bus != nil {
		s.bus.Publish(eventbus.EscalationRaised{Decision: dec, VehicleID: req.VehicleID, Component: req.Component})
	}
	er, ok := s.sink.(metrics.EscalationRecorder)
	if !ok {
		return
	}
	ev := metrics.EscalationEvent{
		EscalationID: dec.EscalationID,
		Component:    req.Component,
		Severity:     dec.Severity,
		Probability:  req.Probability,
		Time:         s.now(),
	}
	if err := er.RecordEscalation(ev); err != nil {
		s.log.Errorf("metrics error: %v", err)
	}
}

func (s *Scheduler) recordNoSlot(workshopID string) {
	if nr, ok := s.sink.(metrics.NoSlotRecorder); ok {
		if err := nr.RecordNoSlot(workshopID); err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
}

func (s *Scheduler) recordBooking(req model.AppointmentRequest, dec model.EscalationDecision, sel workshop.Selection, chosen model.Slot, bk model.Booking, isEmergency bool, start time.Time) {
	ev := metrics.BookingEvent{
		BookingID:  bk.BookingID,
		WorkshopID: bk.WorkshopID,
		VehicleID:  req.VehicleID,
		Component:  req.Component,
		Severity:   dec.Severity,
		Emergency:  isEmergency,
		Fallback:   sel.Fallback,
		MatchScore: chosen.MatchScore,
		SlotTime:   chosen.Time,
		Latency:    s.now().Sub(start),
		Time:       s.now(),
	}
	if err := s.sink.RecordBooking(ev); err != nil {
		s.log.Errorf("metrics error: %v", err)
	}
	if lr, ok := s.sink.(metrics.LoadRecorder); ok {
		if err := lr.RecordWorkshopLoad(bk.WorkshopID, s.workshops.CurrentLoad(bk.WorkshopID)); err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
}
