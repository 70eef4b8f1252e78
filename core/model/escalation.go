package model

import (
	"encoding/json"
	"fmt"
)

// Severity is the ordinal escalation tier derived from component,
// probability and risk level.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
	SeverityEmergency
)

// String returns the canonical upper-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityEmergency:
		return "EMERGENCY"
	}
	return "UNKNOWN"
}

// MarshalJSON encodes the severity as its canonical name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalJSON decodes a canonical severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "LOW":
		*s = SeverityLow
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	case "CRITICAL":
		*s = SeverityCritical
	case "EMERGENCY":
		*s = SeverityEmergency
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// EscalationDecision is the transient outcome of an escalation evaluation.
type EscalationDecision struct {
	Severity             Severity `json:"severity"`
	ShouldEscalate       bool     `json:"should_escalate"`
	Actions              []string `json:"actions"`
	RecommendedTimeframe string   `json:"recommended_timeframe"`
	OverridePreferences  bool     `json:"override_preferences"`
	Reasoning            string   `json:"reasoning"`
	EscalationID         string   `json:"escalation_id,omitempty"`
}

// DriveClearance classifies whether a vehicle may still be driven.
type DriveClearance string

const (
	DriveNo          DriveClearance = "no"
	DriveLimited     DriveClearance = "limited"
	DriveWithCaution DriveClearance = "with_caution"
	DriveYes         DriveClearance = "yes"
)

// Allowed reports whether the vehicle may be driven at all.
func (c DriveClearance) Allowed() bool { return c != DriveNo }

// SafetyAssessment describes whether and how far a vehicle may be driven
// before service. MaxDistanceKM is nil when no limit applies.
type SafetyAssessment struct {
	SafeToDrive    DriveClearance `json:"safe_to_drive"`
	Recommendation string         `json:"recommendation"`
	Reason         string         `json:"reason"`
	MaxDistanceKM  *int           `json:"max_distance_km"`
}
