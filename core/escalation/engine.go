package escalation

import (
	"fmt"
	"sync/atomic"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// threshold holds the per-component probability above which a failure is
// considered critical, and the service window attached to it.
type threshold struct {
	probability    float64
	timeframeHours int
}

// defaultThreshold applies to components without a dedicated entry.
var defaultThreshold = threshold{probability: 0.75, timeframeHours: 48}

var componentThresholds = map[string]threshold{
	"brake_system": {probability: 0.75, timeframeHours: 48},
	"engine":       {probability: 0.80, timeframeHours: 24},
	"battery":      {probability: 0.70, timeframeHours: 72},
	"tyre":         {probability: 0.65, timeframeHours: 48},
}

// Engine evaluates failure severity and escalates critical cases. The
// escalation counter is process-wide and monotonically increasing.
type Engine struct {
	count atomic.Int64
	log   logger.Logger
}

// NewEngine creates an escalation engine.
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{log: log}
}

// Count returns the number of escalations raised so far.
func (e *Engine) Count() int64 { return e.count.Load() }

// Evaluate maps a predicted failure to a severity and the policy that
// follows from it. It never fails for valid numeric input; unknown
// components fall back to the default thresholds.
func (e *Engine) Evaluate(risk model.RiskLevel, component string, probability float64) model.EscalationDecision {
	th, ok := componentThresholds[component]
	if !ok {
		th = defaultThreshold
	}

	severity := calculateSeverity(risk, component, probability, th)
	shouldEscalate := severity >= model.SeverityCritical

	dec := model.EscalationDecision{
		Severity:             severity,
		ShouldEscalate:       shouldEscalate,
		Actions:              actionsFor(severity),
		RecommendedTimeframe: timeframeFor(severity, th),
		OverridePreferences:  severity == model.SeverityEmergency,
		Reasoning:            reasoningFor(severity, component, probability, th),
	}
	if shouldEscalate {
		n := e.count.Add(1)
		dec.EscalationID = fmt.Sprintf("ESC-%04d", n)
		e.log.Warnf("escalation #%d: %s severity=%s probability=%.2f", n, component, severity, probability)
	}
	return dec
}

// calculateSeverity walks the severity ladder top-down; the first matching
// rule wins.
func calculateSeverity(risk model.RiskLevel, component string, probability float64, th threshold) model.Severity {
	if component == "brake_system" && probability >= 0.90 {
		return model.SeverityEmergency
	}
	if component == "engine" && probability >= 0.95 {
		return model.SeverityEmergency
	}
	if probability >= th.probability {
		if risk == model.RiskHigh {
			return model.SeverityCritical
		}
		return model.SeverityHigh
	}
	if probability >= 0.60 {
		return model.SeverityHigh
	}
	if probability >= 0.40 {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

func actionsFor(severity model.Severity) []string {
	switch severity {
	case model.SeverityEmergency:
		return []string{
			"OVERRIDE_SCHEDULING",
			"FORCE_EARLIEST_SLOT",
			"SEND_URGENT_VOICE_ALERT",
			"NOTIFY_WORKSHOP_EMERGENCY",
			"RECOMMEND_TOW_SERVICE",
			"DISABLE_VEHICLE_IF_POSSIBLE",
		}
	case model.SeverityCritical:
		return []string{
			"PRIORITIZE_SCHEDULING",
			"USE_EMERGENCY_SLOT",
			"SEND_URGENT_VOICE_ALERT",
			"NOTIFY_WORKSHOP_PRIORITY",
			"RECOMMEND_IMMEDIATE_SERVICE",
		}
	case model.SeverityHigh:
		return []string{
			"EXPEDITE_SCHEDULING",
			"SEND_VOICE_ALERT",
			"RECOMMEND_EARLY_SERVICE",
		}
	case model.SeverityMedium:
		return []string{
			"NORMAL_SCHEDULING",
			"SEND_VOICE_NOTIFICATION",
		}
	default:
		return []string{
			"NORMAL_SCHEDULING",
			"SEND_REMINDER",
		}
	}
}

func timeframeFor(severity model.Severity, th threshold) string {
	switch severity {
	case model.SeverityEmergency:
		return "next 2 hours"
	case model.SeverityCritical:
		return "next 6 hours"
	case model.SeverityHigh:
		return fmt.Sprintf("next %d hours", th.timeframeHours)
	case model.SeverityMedium:
		return "next 3-7 days"
	default:
		return "next 1-2 weeks"
	}
}

func reasoningFor(severity model.Severity, component string, probability float64, th threshold) string {
	switch severity {
	case model.SeverityEmergency:
		return fmt.Sprintf(
			"EMERGENCY: %s failure probability %.0f%% exceeds critical threshold. Immediate action required to prevent safety hazard or complete breakdown.",
			component, probability*100)
	case model.SeverityCritical:
		return fmt.Sprintf(
			"CRITICAL: %s failure probability %.0f%% is above threshold (%.0f%%). Urgent service required within %d hours.",
			component, probability*100, th.probability*100, th.timeframeHours)
	case model.SeverityHigh:
		return fmt.Sprintf(
			"HIGH: %s showing significant failure risk (%.0f%%). Early service recommended to prevent escalation.",
			component, probability*100)
	case model.SeverityMedium:
		return fmt.Sprintf(
			"MEDIUM: %s showing moderate failure risk (%.0f%%). Schedule service at your convenience within the week.",
			component, probability*100)
	default:
		return fmt.Sprintf(
			"LOW: %s showing minor wear (%.0f%%). Routine maintenance recommended.",
			component, probability*100)
	}
}

// CheckSafetyToDrive maps a severity to a drive clearance with a
// human-readable recommendation.
func (e *Engine) CheckSafetyToDrive(component string, probability float64, severity model.Severity) model.SafetyAssessment {
	switch severity {
	case model.SeverityEmergency:
		return model.SafetyAssessment{
			SafeToDrive:    model.DriveNo,
			Recommendation: "DO NOT DRIVE",
			Reason:         fmt.Sprintf("%s failure imminent. Arrange tow service immediately.", component),
			MaxDistanceKM:  distance(0),
		}
	case model.SeverityCritical:
		return model.SafetyAssessment{
			SafeToDrive:    model.DriveLimited,
			Recommendation: "DRIVE TO SERVICE CENTER ONLY",
			Reason:         fmt.Sprintf("%s at high risk. Avoid highways and long distances.", component),
			MaxDistanceKM:  distance(10),
		}
	case model.SeverityHigh:
		return model.SafetyAssessment{
			SafeToDrive:    model.DriveWithCaution,
			Recommendation: "DRIVE WITH CAUTION",
			Reason:         fmt.Sprintf("%s showing significant wear. Avoid aggressive driving.", component),
			MaxDistanceKM:  distance(50),
		}
	default:
		return model.SafetyAssessment{
			SafeToDrive:    model.DriveYes,
			Recommendation: "SAFE TO DRIVE",
			Reason:         fmt.Sprintf("%s condition acceptable. Schedule service soon.", component),
		}
	}
}

func distance(km int) *int { return &km }
