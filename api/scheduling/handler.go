package scheduling

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/forecast"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/scheduler"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/slot"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/workshop"
)

// NewScheduleHandler returns an HTTP handler accepting appointment
// requests via POST /api/scheduling/schedule. A no-availability outcome is
// reported as 409 with the structured error body.
func NewScheduleHandler(s *scheduler.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req model.AppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate(req); err != "" {
			http.Error(w, err, http.StatusBadRequest)
			return
		}
		res := s.ScheduleAppointment(req)
		status := http.StatusOK
		if !res.OK() {
			status = http.StatusConflict
		}
		writeJSON(w, status, res)
	})
}

// validate rejects caller contract violations before they reach the
// scheduler.
func validate(req model.AppointmentRequest) string {
	if req.VehicleID == "" {
		return "vehicle_id is required"
	}
	if req.Component == "" {
		return "component is required"
	}
	switch req.RiskLevel {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		return "risk_level must be low, medium or high"
	}
	if req.Probability < 0 || req.Probability > 1 {
		return "probability must be within [0,1]"
	}
	return ""
}

// NewWorkshopsHandler serves workshop status snapshots via
// GET /api/scheduling/workshops and /api/scheduling/workshops/{id}.
func NewWorkshopsHandler(m *workshop.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := pathTail(r.URL.Path, "workshops")
		if id == "" {
			writeJSON(w, http.StatusOK, m.All())
			return
		}
		st, err := m.Get(id)
		if err != nil {
			http.Error(w, "unknown workshop", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
}

// NewSlotsHandler serves a workshop's open appointment slots via
// GET /api/scheduling/slots/{id}?days=N.
func NewSlotsHandler(m *workshop.Manager, slots *slot.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := pathTail(r.URL.Path, "slots")
		if id == "" {
			http.Error(w, "workshop id is required", http.StatusBadRequest)
			return
		}
		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 30 {
				http.Error(w, "days must be within [1,30]", http.StatusBadRequest)
				return
			}
			days = n
		}
		st, err := m.Get(id)
		if err != nil {
			http.Error(w, "unknown workshop", http.StatusNotFound)
			return
		}
		open := slots.Available(st.Workshop, days)
		if open == nil {
			open = []model.Slot{}
		}
		writeJSON(w, http.StatusOK, open)
	})
}

// NewForecastHandler serves demand forecasts via
// GET /api/scheduling/forecast/{id}?days=N.
func NewForecastHandler(f *forecast.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := pathTail(r.URL.Path, "forecast")
		if id == "" {
			http.Error(w, "workshop id is required", http.StatusBadRequest)
			return
		}
		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 30 {
				http.Error(w, "days must be within [1,30]", http.StatusBadRequest)
				return
			}
			days = n
		}
		writeJSON(w, http.StatusOK, f.ForecastDemand(id, days))
	})
}

// NewLoadCurveHandler serves projected utilisation via
// GET /api/scheduling/load-curve/{id}.
func NewLoadCurveHandler(f *forecast.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := pathTail(r.URL.Path, "load-curve")
		if id == "" {
			http.Error(w, "workshop id is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, f.LoadCurve(id, 7))
	})
}

// NewBookingsHandler serves the booking ledger via
// GET /api/scheduling/bookings?workshop_id=&vehicle_id=.
func NewBookingsHandler(store booking.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := booking.Query{
			WorkshopID: r.URL.Query().Get("workshop_id"),
			VehicleID:  r.URL.Query().Get("vehicle_id"),
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []model.Booking{}
		}
		writeJSON(w, http.StatusOK, records)
	})
}

// NewMux assembles the scheduling API routes.
func NewMux(s *scheduler.Scheduler, m *workshop.Manager, f *forecast.Forecaster, slots *slot.Manager, store booking.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/scheduling/schedule", NewScheduleHandler(s))
	mux.Handle("/api/scheduling/workshops", NewWorkshopsHandler(m))
	mux.Handle("/api/scheduling/workshops/", NewWorkshopsHandler(m))
	mux.Handle("/api/scheduling/slots/", NewSlotsHandler(m, slots))
	mux.Handle("/api/scheduling/forecast/", NewForecastHandler(f))
	mux.Handle("/api/scheduling/load-curve/", NewLoadCurveHandler(f))
	mux.Handle("/api/scheduling/bookings", NewBookingsHandler(store))
	return mux
}

func pathTail(path, segment string) string {
	idx := strings.Index(path, "/"+segment)
	if idx < 0 {
		return ""
	}
	tail := strings.Trim(path[idx+len(segment)+1:], "/")
	return tail
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
