package model

import "time"

// RiskLevel is the risk tier attached to a failure prediction by the
// upstream scorer.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Preferences carries the owner's scheduling wishes. All fields are
// optional free-form strings matched case-insensitively.
type Preferences struct {
	PreferredTime string `json:"preferred_time,omitempty"`
	PreferredDay  string `json:"preferred_day,omitempty"`
	PreferredCity string `json:"preferred_city,omitempty"`
}

// AppointmentRequest asks the scheduler to turn a predicted component
// failure into a concrete booking.
type AppointmentRequest struct {
	VehicleID       string       `json:"vehicle_id"`
	Component       string       `json:"component"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	Probability     float64      `json:"probability"`
	Preferences     *Preferences `json:"owner_preferences,omitempty"`
	VehicleLocation string       `json:"vehicle_location,omitempty"`
}

// AssignedWorkshop summarises the selected workshop for the caller.
type AssignedWorkshop struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
	Fallback bool    `json:"fallback,omitempty"`
}

// SlotSummary describes the booked slot.
type SlotSummary struct {
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	DateTime          time.Time `json:"datetime"`
	Type              SlotType  `json:"type"`
	IsEmergency       bool      `json:"is_emergency"`
	EstimatedDuration int       `json:"estimated_duration"`
}

// EscalationSummary echoes the escalation decision in the booking result.
type EscalationSummary struct {
	Severity             Severity `json:"severity"`
	ShouldEscalate       bool     `json:"should_escalate"`
	RecommendedTimeframe string   `json:"recommended_timeframe"`
	Actions              []string `json:"actions"`
	EscalationID         string   `json:"escalation_id,omitempty"`
}

// Reasoning collects each subsystem's rationale for the decision.
type Reasoning struct {
	WorkshopSelection string  `json:"workshop_selection"`
	Escalation        string  `json:"escalation"`
	DemandForecast    string  `json:"demand_forecast"`
	SlotMatchScore    float64 `json:"slot_match_score"`
}

// AppointmentResult is the composed outcome of a scheduling request.
// Status is "success" or, only for the no-available-slots case, "error".
type AppointmentResult struct {
	Status             string             `json:"status"`
	Error              string             `json:"error,omitempty"`
	WorkshopID         string             `json:"workshop_id,omitempty"`
	BookingID          string             `json:"booking_id,omitempty"`
	VehicleID          string             `json:"vehicle_id,omitempty"`
	AssignedWorkshop   AssignedWorkshop   `json:"assigned_workshop,omitempty"`
	Slot               SlotSummary        `json:"slot,omitempty"`
	Priority           Severity           `json:"priority"`
	Escalation         EscalationSummary  `json:"escalation"`
	Reasoning          Reasoning          `json:"reasoning"`
	SafetyAssessment   SafetyAssessment   `json:"safety_assessment"`
	DemandForecast     SlotRecommendation `json:"demand_forecast"`
	PreferencesHonored bool               `json:"preferences_honored"`
	CreatedAt          time.Time          `json:"created_at"`
}

// OK reports whether the scheduling request produced a booking.
func (r AppointmentResult) OK() bool { return r.Status == "success" }
