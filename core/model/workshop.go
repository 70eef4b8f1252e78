package model

import "fmt"

// GeoPoint locates a workshop.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OperatingHours delimits the whole hours a workshop accepts appointments,
// Start inclusive and End exclusive.
type OperatingHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Workshop is a service location. The struct carries only static catalog
// attributes; mutable load and emergency-slot state is owned by the
// workshop manager.
type Workshop struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	City                 string             `json:"city"`
	Phone                string             `json:"phone,omitempty"`
	Location             GeoPoint           `json:"location"`
	TechnicianCapacity   int                `json:"technician_capacity"`
	BayCount             int                `json:"bay_count"`
	Specializations      []string           `json:"specializations"`
	EmergencySlotsPerDay int                `json:"emergency_slots_per_day"`
	Hours                OperatingHours     `json:"operating_hours"`
	Rating               float64            `json:"rating"`
	PartsAvailability    map[string]float64 `json:"parts_availability"`
}

// Specializes reports whether the workshop services the given component.
func (w Workshop) Specializes(component string) bool {
	for _, s := range w.Specializations {
		if s == component {
			return true
		}
	}
	return false
}

// Validate checks that the catalog entry is usable.
func (w Workshop) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("workshop id is required")
	}
	if w.TechnicianCapacity <= 0 {
		return fmt.Errorf("workshop %s: technician capacity must be positive", w.ID)
	}
	if w.Hours.Start < 0 || w.Hours.End > 24 || w.Hours.Start >= w.Hours.End {
		return fmt.Errorf("workshop %s: invalid operating hours %d-%d", w.ID, w.Hours.Start, w.Hours.End)
	}
	return nil
}

// WorkshopStatus is a point-in-time snapshot of a workshop including its
// mutable runtime state.
type WorkshopStatus struct {
	Workshop
	CurrentLoad             float64 `json:"current_load"`
	LoadPercentage          float64 `json:"load_percentage"`
	EmergencySlotsAvailable int     `json:"emergency_slots_available"`
	Status                  string  `json:"status"`
}
