package workshop

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// ErrUnknownWorkshop is returned when a workshop id is not in the catalog.
var ErrUnknownWorkshop = errors.New("workshop: unknown workshop")

// minPartsAvailability excludes workshops unlikely to have the needed part
// in stock.
const minPartsAvailability = 0.5

// Scoring weights for candidate ranking.
const (
	loadWeight     = 30.0
	partsWeight    = 25.0
	ratingWeight   = 20.0
	capacityWeight = 15.0
	cityBonus      = 10.0
)

// Selection is the outcome of a workshop search. Fallback marks the
// degraded path taken when no candidate passed the filters: the first
// catalog workshop is returned with score zero rather than failing the
// request.
type Selection struct {
	Workshop  model.Workshop
	Score     float64
	Reasoning string
	Fallback  bool
}

// Manager owns the fixed workshop catalog and its mutable runtime state
// (current load, emergency slots used today). All state access is guarded
// by a single mutex; the catalog itself never changes after construction.
type Manager struct {
	catalog []model.Workshop

	mu            sync.Mutex
	load          map[string]float64
	emergencyUsed map[string]int

	log logger.Logger
}

// NewManager builds a manager for the given catalog. The catalog order is
// significant: it breaks score ties and designates the fallback workshop.
func NewManager(catalog []model.Workshop, log logger.Logger) (*Manager, error) {
	if len(catalog) == 0 {
		return nil, errors.New("workshop: empty catalog")
	}
	if log == nil {
		log = logger.Nop{}
	}
	seen := make(map[string]struct{}, len(catalog))
	for _, ws := range catalog {
		if err := ws.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[ws.ID]; dup {
			return nil, fmt.Errorf("workshop: duplicate id %s", ws.ID)
		}
		seen[ws.ID] = struct{}{}
	}
	m := &Manager{
		catalog:       catalog,
		load:          make(map[string]float64, len(catalog)),
		emergencyUsed: make(map[string]int, len(catalog)),
		log:           log,
	}
	log.Infof("workshop manager initialized with %d workshops", len(catalog))
	return m, nil
}

// Get returns a status snapshot for one workshop.
func (m *Manager) Get(id string) (model.WorkshopStatus, error) {
	for _, ws := range m.catalog {
		if ws.ID == id {
			m.mu.Lock()
			st := m.statusLocked(ws)
			m.mu.Unlock()
			return st, nil
		}
	}
	return model.WorkshopStatus{}, fmt.Errorf("%w: %s", ErrUnknownWorkshop, id)
}

// All returns status snapshots for every workshop in catalog order.
func (m *Manager) All() []model.WorkshopStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WorkshopStatus, 0, len(m.catalog))
	for _, ws := range m.catalog {
		out = append(out, m.statusLocked(ws))
	}
	return out
}

func (m *Manager) statusLocked(ws model.Workshop) model.WorkshopStatus {
	load := m.load[ws.ID]
	status := "available"
	switch {
	case load >= 0.8:
		status = "full"
	case load >= 0.5:
		status = "busy"
	}
	return model.WorkshopStatus{
		Workshop:                ws,
		CurrentLoad:             load,
		LoadPercentage:          load * 100,
		EmergencySlotsAvailable: ws.EmergencySlotsPerDay - m.emergencyUsed[ws.ID],
		Status:                  status,
	}
}

// FindBest ranks qualifying workshops and returns the highest scoring one.
// Candidates must specialize in the component, have parts availability of
// at least 0.5 and, for emergencies, an unused emergency slot. Ties keep
// the earlier catalog entry. When nothing qualifies the first catalog
// workshop is returned with the Fallback flag set; this is a deliberate
// availability-over-correctness tradeoff, not an error.
func (m *Manager) FindBest(component string, risk model.RiskLevel, isEmergency bool, preferredCity string) Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	best := Selection{Score: -1}
	var bestLoadScore, bestPartsScore, bestRatingScore float64

	for _, ws := range m.catalog {
		if !ws.Specializes(component) {
			continue
		}
		parts := ws.PartsAvailability[component]
		if parts < minPartsAvailability {
			continue
		}
		if isEmergency && ws.EmergencySlotsPerDay-m.emergencyUsed[ws.ID] <= 0 {
			continue
		}

		loadScore := (1.0 - m.load[ws.ID]) * loadWeight
		partsScore := parts * partsWeight
		ratingScore := ws.Rating / 5.0 * ratingWeight
		capacityScore := float64(ws.TechnicianCapacity) / 10.0 * capacityWeight
		score := loadScore + partsScore + ratingScore + capacityScore
		if preferredCity != "" && strings.EqualFold(ws.City, preferredCity) {
			score += cityBonus
		}

		if score > best.Score {
			best = Selection{Workshop: ws, Score: score}
			bestLoadScore, bestPartsScore, bestRatingScore = loadScore, partsScore, ratingScore
		}
	}

	if best.Score < 0 {
		fb := m.catalog[0]
		m.log.Warnf("no qualified workshop for %s (emergency=%t), falling back to %s", component, isEmergency, fb.ID)
		return Selection{
			Workshop:  fb,
			Score:     0,
			Reasoning: "Fallback: no qualified workshop found, using default",
			Fallback:  true,
		}
	}

	var parts []string
	if bestLoadScore > 20 {
		parts = append(parts, "low current load")
	}
	if bestPartsScore > 20 {
		parts = append(parts, "high parts availability")
	}
	if bestRatingScore > 15 {
		parts = append(parts, "excellent rating")
	}
	best.Reasoning = "Selected based on: " + strings.Join(parts, ", ")
	return best
}

// UpdateLoad applies a load delta to the workshop, clamped to [0,1].
// Unknown ids are ignored.
func (m *Manager) UpdateLoad(id string, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.knownLocked(id) {
		return
	}
	load := m.load[id] + delta
	if load < 0 {
		load = 0
	}
	if load > 1 {
		load = 1
	}
	m.load[id] = load
	m.log.Debugw("workshop load updated", map[string]any{"workshop_id": id, "load": load})
}

// CurrentLoad returns the workshop's load fraction.
func (m *Manager) CurrentLoad(id string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load[id]
}

// UseEmergencySlot consumes one of the workshop's daily emergency slots.
// It returns false, without failing the caller, when the cap is exhausted
// or the workshop is unknown.
func (m *Manager) UseEmergencySlot(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ws := range m.catalog {
		if ws.ID != id {
			continue
		}
		if m.emergencyUsed[id] >= ws.EmergencySlotsPerDay {
			return false
		}
		m.emergencyUsed[id]++
		m.log.Infof("emergency slot used at %s: %d/%d", id, m.emergencyUsed[id], ws.EmergencySlotsPerDay)
		return true
	}
	return false
}

// ResetDailyCounters zeroes the emergency slot usage for every workshop.
// A maintenance hook must call this once per calendar day.
func (m *Manager) ResetDailyCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emergencyUsed = make(map[string]int, len(m.catalog))
	m.log.Infof("daily workshop counters reset")
}

func (m *Manager) knownLocked(id string) bool {
	for _, ws := range m.catalog {
		if ws.ID == id {
			return true
		}
	}
	return false
}
