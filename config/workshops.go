package config

import (
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// WorkshopsConfig holds the service-location catalog. The catalog is
// static configuration: loaded once at startup, never mutated.
type WorkshopsConfig struct {
	Catalog []model.Workshop `json:"catalog"`
}

// SetDefaults installs the built-in catalog when none is configured.
func (c *WorkshopsConfig) SetDefaults() {
	if len(c.Catalog) == 0 {
		c.Catalog = DefaultCatalog()
	}
}

// Validate checks every catalog entry.
func (c WorkshopsConfig) Validate() error {
	for _, ws := range c.Catalog {
		if err := ws.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog returns the built-in five-workshop network used by demos
// and as a fallback when no catalog is configured.
func DefaultCatalog() []model.Workshop {
	return []model.Workshop{
		{
			ID:                   "WS-MUM-01",
			Name:                 "AutoCare Mumbai Central",
			City:                 "Mumbai",
			Phone:                "+91-1800-200-101",
			Location:             model.GeoPoint{Lat: 19.0760, Lon: 72.8777},
			TechnicianCapacity:   8,
			BayCount:             6,
			Specializations:      []string{"brake_system", "engine", "battery", "tyre"},
			EmergencySlotsPerDay: 2,
			Hours:                model.OperatingHours{Start: 8, End: 20},
			Rating:               4.5,
			PartsAvailability: map[string]float64{
				"brake_system": 0.95,
				"engine":       0.80,
				"battery":      0.90,
				"tyre":         0.85,
			},
		},
		{
			ID:                   "WS-PUNE-01",
			Name:                 "ServicePro Pune West",
			City:                 "Pune",
			Phone:                "+91-1800-200-102",
			Location:             model.GeoPoint{Lat: 18.5204, Lon: 73.8567},
			TechnicianCapacity:   6,
			BayCount:             4,
			Specializations:      []string{"brake_system", "engine", "battery"},
			EmergencySlotsPerDay: 1,
			Hours:                model.OperatingHours{Start: 9, End: 19},
			Rating:               4.3,
			PartsAvailability: map[string]float64{
				"brake_system": 0.90,
				"engine":       0.75,
				"battery":      0.95,
				"tyre":         0.70,
			},
		},
		{
			ID:                   "WS-BLR-01",
			Name:                 "TechService Bangalore East",
			City:                 "Bangalore",
			Phone:                "+91-1800-200-103",
			Location:             model.GeoPoint{Lat: 12.9716, Lon: 77.5946},
			TechnicianCapacity:   10,
			BayCount:             8,
			Specializations:      []string{"brake_system", "engine", "battery", "tyre", "electrical"},
			EmergencySlotsPerDay: 3,
			Hours:                model.OperatingHours{Start: 7, End: 21},
			Rating:               4.7,
			PartsAvailability: map[string]float64{
				"brake_system": 0.98,
				"engine":       0.90,
				"battery":      0.95,
				"tyre":         0.92,
			},
		},
		{
			ID:                   "WS-DEL-01",
			Name:                 "QuickFix Delhi South",
			City:                 "Delhi",
			Phone:                "+91-1800-200-104",
			Location:             model.GeoPoint{Lat: 28.7041, Lon: 77.1025},
			TechnicianCapacity:   7,
			BayCount:             5,
			Specializations:      []string{"brake_system", "engine", "battery", "tyre"},
			EmergencySlotsPerDay: 2,
			Hours:                model.OperatingHours{Start: 8, End: 20},
			Rating:               4.4,
			PartsAvailability: map[string]float64{
				"brake_system": 0.92,
				"engine":       0.85,
				"battery":      0.88,
				"tyre":         0.90,
			},
		},
		{
			ID:                   "WS-CHE-01",
			Name:                 "AutoExpert Chennai North",
			City:                 "Chennai",
			Phone:                "+91-1800-200-105",
			Location:             model.GeoPoint{Lat: 13.0827, Lon: 80.2707},
			TechnicianCapacity:   9,
			BayCount:             7,
			Specializations:      []string{"brake_system", "engine", "battery", "tyre"},
			EmergencySlotsPerDay: 2,
			Hours:                model.OperatingHours{Start: 8, End: 20},
			Rating:               4.6,
			PartsAvailability: map[string]float64{
				"brake_system": 0.94,
				"engine":       0.88,
				"battery":      0.93,
				"tyre":         0.87,
			},
		},
	}
}
