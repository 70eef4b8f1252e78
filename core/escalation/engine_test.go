package escalation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

func TestEvaluate_SeverityLadder(t *testing.T) {
	e := NewEngine(nil)
	cases := []struct {
		name        string
		risk        model.RiskLevel
		component   string
		probability float64
		want        model.Severity
	}{
		{"brake emergency", model.RiskHigh, "brake_system", 0.92, model.SeverityEmergency},
		{"brake at emergency boundary", model.RiskLow, "brake_system", 0.90, model.SeverityEmergency},
		{"engine emergency", model.RiskHigh, "engine", 0.96, model.SeverityEmergency},
		{"engine below emergency boundary", model.RiskHigh, "engine", 0.94, model.SeverityCritical},
		{"critical needs high risk", model.RiskHigh, "battery", 0.75, model.SeverityCritical},
		{"above threshold without high risk", model.RiskMedium, "battery", 0.75, model.SeverityHigh},
		{"tyre threshold", model.RiskHigh, "tyre", 0.65, model.SeverityCritical},
		{"high band", model.RiskLow, "engine", 0.60, model.SeverityHigh},
		{"medium band", model.RiskLow, "engine", 0.40, model.SeverityMedium},
		{"low band", model.RiskLow, "engine", 0.39, model.SeverityLow},
		{"unknown component uses default threshold", model.RiskHigh, "suspension", 0.75, model.SeverityCritical},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dec := e.Evaluate(c.risk, c.component, c.probability)
			if dec.Severity != c.want {
				t.Fatalf("severity = %s, want %s", dec.Severity, c.want)
			}
		})
	}
}

func TestEvaluate_EscalationFlags(t *testing.T) {
	e := NewEngine(nil)

	dec := e.Evaluate(model.RiskHigh, "brake_system", 0.92)
	if !dec.ShouldEscalate {
		t.Fatalf("emergency must escalate")
	}
	if !dec.OverridePreferences {
		t.Fatalf("emergency must override preferences")
	}
	if dec.RecommendedTimeframe != "next 2 hours" {
		t.Fatalf("timeframe = %q", dec.RecommendedTimeframe)
	}

	dec = e.Evaluate(model.RiskHigh, "battery", 0.75)
	if !dec.ShouldEscalate {
		t.Fatalf("critical must escalate")
	}
	if dec.OverridePreferences {
		t.Fatalf("critical must not override preferences")
	}
	if dec.RecommendedTimeframe != "next 6 hours" {
		t.Fatalf("timeframe = %q", dec.RecommendedTimeframe)
	}

	dec = e.Evaluate(model.RiskMedium, "battery", 0.75)
	if dec.ShouldEscalate {
		t.Fatalf("high severity must not escalate")
	}
	if dec.EscalationID != "" {
		t.Fatalf("non-escalated decision carries id %q", dec.EscalationID)
	}
}

func TestEvaluate_EscalationIDSequence(t *testing.T) {
	e := NewEngine(nil)
	for i := 1; i <= 3; i++ {
		dec := e.Evaluate(model.RiskHigh, "brake_system", 0.92)
		want := fmt.Sprintf("ESC-%04d", i)
		if dec.EscalationID != want {
			t.Fatalf("escalation id = %q, want %q", dec.EscalationID, want)
		}
	}
	if e.Count() != 3 {
		t.Fatalf("count = %d, want 3", e.Count())
	}
}

func TestEvaluate_TimeframeUsesComponentWindow(t *testing.T) {
	e := NewEngine(nil)
	dec := e.Evaluate(model.RiskMedium, "battery", 0.75)
	if dec.RecommendedTimeframe != "next 72 hours" {
		t.Fatalf("timeframe = %q, want next 72 hours", dec.RecommendedTimeframe)
	}
}

func TestEvaluate_Reasoning(t *testing.T) {
	e := NewEngine(nil)
	dec := e.Evaluate(model.RiskHigh, "engine", 0.85)
	if !strings.HasPrefix(dec.Reasoning, "CRITICAL: engine failure probability 85%") {
		t.Fatalf("reasoning = %q", dec.Reasoning)
	}
}

func TestCheckSafetyToDrive(t *testing.T) {
	e := NewEngine(nil)

	sa := e.CheckSafetyToDrive("brake_system", 0.92, model.SeverityEmergency)
	if sa.SafeToDrive != model.DriveNo || sa.SafeToDrive.Allowed() {
		t.Fatalf("emergency clearance = %s", sa.SafeToDrive)
	}
	if sa.MaxDistanceKM == nil || *sa.MaxDistanceKM != 0 {
		t.Fatalf("emergency max distance = %v", sa.MaxDistanceKM)
	}

	sa = e.CheckSafetyToDrive("engine", 0.85, model.SeverityCritical)
	if sa.SafeToDrive != model.DriveLimited {
		t.Fatalf("critical clearance = %s", sa.SafeToDrive)
	}
	if sa.MaxDistanceKM == nil || *sa.MaxDistanceKM != 10 {
		t.Fatalf("critical max distance = %v", sa.MaxDistanceKM)
	}

	sa = e.CheckSafetyToDrive("tyre", 0.6, model.SeverityHigh)
	if sa.SafeToDrive != model.DriveWithCaution {
		t.Fatalf("high clearance = %s", sa.SafeToDrive)
	}
	if sa.MaxDistanceKM == nil || *sa.MaxDistanceKM != 50 {
		t.Fatalf("high max distance = %v", sa.MaxDistanceKM)
	}

	sa = e.CheckSafetyToDrive("battery", 0.3, model.SeverityLow)
	if sa.SafeToDrive != model.DriveYes {
		t.Fatalf("low clearance = %s", sa.SafeToDrive)
	}
	if sa.MaxDistanceKM != nil {
		t.Fatalf("low max distance = %v", sa.MaxDistanceKM)
	}
}
