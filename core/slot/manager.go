package slot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// ErrSlotTaken is returned when a booking targets an hour that is already
// booked at the same workshop.
var ErrSlotTaken = errors.New("slot: already booked")

// estimatedDurationMinutes is the nominal service duration attached to
// every slot.
const estimatedDurationMinutes = 60

// Manager generates candidate appointment slots from workshop operating
// hours, scores them and records bookings. The booked-hour ledger is
// in-process; an injected booking.Store receives an audit copy of every
// booking.
type Manager struct {
	mu     sync.Mutex
	booked map[string]map[time.Time]struct{}

	store booking.Store
	now   func() time.Time
	log   logger.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a slot manager. A nil store disables the audit
// ledger.
func NewManager(store booking.Store, log logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Nop{}
	}
	m := &Manager{
		booked: make(map[string]map[time.Time]struct{}),
		store:  store,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate enumerates candidate slots for a workshop over the given range.
// Days fully in the past are skipped, booked hours are excluded and, when
// includeEmergency is set, the first two operating hours of each day are
// flagged as emergency candidates.
func (m *Manager) Generate(ws model.Workshop, start time.Time, days int, includeEmergency bool) []model.Slot {
	m.mu.Lock()
	taken := m.booked[ws.ID]
	bookedCount := len(taken)
	m.mu.Unlock()

	now := m.now()
	today := dateOf(now)

	var slots []model.Slot
	for offset := 0; offset < days; offset++ {
		day := dateOf(start.AddDate(0, 0, offset))
		if day.Before(today) {
			continue
		}
		for hour := ws.Hours.Start; hour < ws.Hours.End; hour++ {
			slotTime := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			if _, ok := taken[slotTime]; ok {
				continue
			}

			slotType := model.SlotEvening
			switch {
			case hour < 12:
				slotType = model.SlotMorning
			case hour < 17:
				slotType = model.SlotAfternoon
			}

			score := 1.0
			if float64(bookedCount) > 0.7*float64(ws.TechnicianCapacity) {
				score *= 0.5
			}
			if daysAway(today, day) > 3 {
				score *= 0.8
			}

			slots = append(slots, model.Slot{
				WorkshopID:        ws.ID,
				Time:              slotTime,
				Type:              slotType,
				IsSameDay:         day.Equal(today),
				IsEmergency:       includeEmergency && (hour == ws.Hours.Start || hour == ws.Hours.Start+1),
				AvailabilityScore: score,
				EstimatedDuration: estimatedDurationMinutes,
			})
		}
	}
	return slots
}

// Available lists the open slots at a workshop over the next days,
// starting today.
func (m *Manager) Available(ws model.Workshop, days int) []model.Slot {
	return m.Generate(ws, m.now(), days, false)
}

// FindOptimal scores the candidate slots for a request and returns the
// best match. The horizon is one day for emergencies and seven otherwise.
// The boolean is false when no slot is available; that outcome is a
// structured result, not a failure.
func (m *Manager) FindOptimal(ws model.Workshop, risk model.RiskLevel, prefs *model.Preferences, isEmergency bool) (model.Slot, bool) {
	days := 7
	if isEmergency {
		days = 1
	}
	now := m.now()
	slots := m.Generate(ws, now, days, isEmergency)
	if len(slots) == 0 {
		return model.Slot{}, false
	}

	today := dateOf(now)
	best := slots[0]
	bestScore := -1.0
	for _, s := range slots {
		score := m.scoreSlot(s, today, risk, prefs, isEmergency)
		if score > bestScore {
			bestScore = score
			best = s
		}
	}
	best.MatchScore = bestScore
	return best, true
}

func (m *Manager) scoreSlot(s model.Slot, today time.Time, risk model.RiskLevel, prefs *model.Preferences, isEmergency bool) float64 {
	score := 0.0
	away := daysAway(today, dateOf(s.Time))

	if isEmergency {
		if s.IsSameDay {
			score += 100
		}
		if s.IsEmergency {
			score += 50
		}
	}

	if risk == model.RiskHigh {
		if bonus := 50 - 10*float64(away); bonus > 0 {
			score += bonus
		}
	}

	if prefs != nil {
		prefTime := strings.ToLower(prefs.PreferredTime)
		if prefTime != "" && strings.Contains(string(s.Type), prefTime) {
			score += 30
		}
		switch strings.ToLower(prefs.PreferredDay) {
		case "tomorrow":
			if away == 1 {
				score += 20
			}
		case "today":
			if away == 0 {
				score += 40
			}
		case "weekend":
			if wd := s.Time.Weekday(); wd == time.Saturday || wd == time.Sunday {
				score += 25
			}
		}
	}

	return score + s.AvailabilityScore*10
}

// Book records an appointment at the given hour. The (workshop, slot time)
// pair is unique; booking an hour that is already taken returns
// ErrSlotTaken. The audit store append is best-effort and never fails the
// booking.
func (m *Manager) Book(workshopID string, slotTime time.Time, vehicleID, serviceType string) (model.Booking, error) {
	m.mu.Lock()
	taken, ok := m.booked[workshopID]
	if !ok {
		taken = make(map[time.Time]struct{})
		m.booked[workshopID] = taken
	}
	if _, dup := taken[slotTime]; dup {
		m.mu.Unlock()
		return model.Booking{}, ErrSlotTaken
	}
	taken[slotTime] = struct{}{}
	m.mu.Unlock()

	b := model.Booking{
		BookingID:   newBookingID(),
		WorkshopID:  workshopID,
		SlotTime:    slotTime,
		VehicleID:   vehicleID,
		ServiceType: serviceType,
		Status:      model.BookingConfirmed,
		CreatedAt:   m.now(),
	}
	if m.store != nil {
		if err := m.store.Append(context.Background(), b); err != nil {
			m.log.Errorf("booking ledger append failed for %s: %v", b.BookingID, err)
		}
	}
	m.log.Infof("booked slot %s for %s at %s on %s", b.BookingID, vehicleID, workshopID, slotTime.Format(time.RFC3339))
	return b, nil
}

// BookedCount returns how many hours are booked at a workshop.
func (m *Manager) BookedCount(workshopID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.booked[workshopID])
}

func newBookingID() string {
	id := uuid.NewString()
	return "BOOK-" + strings.ToUpper(id[:8])
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysAway counts calendar days between two midnights. Counting via
// AddDate keeps the distance exact across DST transitions, where the
// wall-clock gap between midnights is not a multiple of 24h.
func daysAway(today, day time.Time) int {
	days := 0
	for d := today; d.Before(day); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
