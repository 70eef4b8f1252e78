package forecast

import (
	"testing"
	"time"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

var tuesday = time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

func newTestForecaster(ids ...string) *Forecaster {
	return NewForecaster(ids, 42, nil, WithClock(func() time.Time { return tuesday }))
}

func TestForecastDemand_ShapeAndBounds(t *testing.T) {
	f := newTestForecaster("ws-a")
	points := f.ForecastDemand("ws-a", 7)
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}
	for i, p := range points {
		wantDate := tuesday.AddDate(0, 0, i).Format("2006-01-02")
		if p.Date != wantDate {
			t.Fatalf("point %d date = %s, want %s", i, p.Date, wantDate)
		}
		if p.ForecastDemand < 0 {
			t.Fatalf("point %d negative demand", i)
		}
		if p.LowerBound > p.ForecastDemand || p.UpperBound < p.ForecastDemand {
			t.Fatalf("point %d bounds %d/%d around %d", i, p.LowerBound, p.UpperBound, p.ForecastDemand)
		}
		if p.Confidence != 0.85 {
			t.Fatalf("point %d confidence = %v", i, p.Confidence)
		}
	}
}

func TestForecastDemand_Deterministic(t *testing.T) {
	a := newTestForecaster("ws-a").ForecastDemand("ws-a", 7)
	b := newTestForecaster("ws-a").ForecastDemand("ws-a", 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("forecast not reproducible at point %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestForecastDemand_UnknownWorkshopDefaults(t *testing.T) {
	f := newTestForecaster("ws-a")
	points := f.ForecastDemand("nope", 3)
	if len(points) != 3 {
		t.Fatalf("got %d points", len(points))
	}
	for _, p := range points {
		if p.ForecastDemand != 8 || p.LowerBound != 5 || p.UpperBound != 11 || p.Confidence != 0.70 {
			t.Fatalf("default point = %+v", p)
		}
	}
}

func TestForecastDemand_DayOfWeekAdjustment(t *testing.T) {
	f := NewForecaster(nil, 42, nil, WithClock(func() time.Time { return tuesday }))
	// Flat history of 10: the moving average is 10 with zero trend, so only
	// the weekday multipliers move the projection.
	for i := 0; i < 7; i++ {
		f.Observe("ws-flat", 10)
	}
	points := f.ForecastDemand("ws-flat", 7)
	for _, p := range points {
		switch p.DayOfWeek {
		case "Saturday", "Sunday":
			if p.ForecastDemand != 7 {
				t.Fatalf("%s demand = %d, want 7", p.DayOfWeek, p.ForecastDemand)
			}
		case "Monday":
			if p.ForecastDemand != 12 {
				t.Fatalf("Monday demand = %d, want 12", p.ForecastDemand)
			}
		default:
			if p.ForecastDemand != 10 {
				t.Fatalf("%s demand = %d, want 10", p.DayOfWeek, p.ForecastDemand)
			}
		}
	}
}

func TestPredictOptimalSlot_ByRisk(t *testing.T) {
	f := NewForecaster(nil, 42, nil, WithClock(func() time.Time { return tuesday }))
	// Descending history yields a falling projection, making later days
	// quieter than the first.
	for _, v := range []float64{16, 14, 12, 10, 8, 6, 4} {
		f.Observe("ws-a", v)
	}
	points := f.ForecastDemand("ws-a", 7)

	high := f.PredictOptimalSlot("ws-a", "engine", model.RiskHigh)
	if high.RecommendedDate != points[0].Date {
		t.Fatalf("high risk date = %s, want %s", high.RecommendedDate, points[0].Date)
	}
	if high.Reasoning != "High risk requires immediate attention" {
		t.Fatalf("high risk reasoning = %q", high.Reasoning)
	}
	if len(high.AlternativeDates) != 3 {
		t.Fatalf("alternatives = %v", high.AlternativeDates)
	}

	med := f.PredictOptimalSlot("ws-a", "engine", model.RiskMedium)
	wantMed := points[0]
	for _, p := range points[1:3] {
		if p.ForecastDemand < wantMed.ForecastDemand {
			wantMed = p
		}
	}
	if med.RecommendedDate != wantMed.Date {
		t.Fatalf("medium risk date = %s, want %s", med.RecommendedDate, wantMed.Date)
	}

	low := f.PredictOptimalSlot("ws-a", "engine", model.RiskLow)
	wantLow := points[0]
	for _, p := range points[1:] {
		if p.ForecastDemand < wantLow.ForecastDemand {
			wantLow = p
		}
	}
	if low.RecommendedDate != wantLow.Date {
		t.Fatalf("low risk date = %s, want %s", low.RecommendedDate, wantLow.Date)
	}
}

func TestObserve_ClampsNegative(t *testing.T) {
	f := NewForecaster(nil, 42, nil, WithClock(func() time.Time { return tuesday }))
	for i := 0; i < 7; i++ {
		f.Observe("ws-a", -5)
	}
	points := f.ForecastDemand("ws-a", 2)
	for _, p := range points {
		if p.ForecastDemand != 0 {
			t.Fatalf("demand = %d, want 0", p.ForecastDemand)
		}
	}
}

func TestLoadCurve_Buckets(t *testing.T) {
	f := NewForecaster(nil, 42, nil, WithClock(func() time.Time { return tuesday }))
	for i := 0; i < 7; i++ {
		f.Observe("ws-a", 9)
	}
	curve := f.LoadCurve("ws-a", 7)
	if curve.WorkshopID != "ws-a" || len(curve.Curve) != 7 {
		t.Fatalf("curve = %+v", curve)
	}
	for _, p := range curve.Curve {
		if p.Capacity != 10 {
			t.Fatalf("capacity = %d", p.Capacity)
		}
		want := "low"
		switch {
		case p.LoadPercentage >= 80:
			want = "high"
		case p.LoadPercentage >= 50:
			want = "moderate"
		}
		if p.Status != want {
			t.Fatalf("status = %s for %.1f%%", p.Status, p.LoadPercentage)
		}
		if p.LoadPercentage > 100 {
			t.Fatalf("load above 100%%: %v", p.LoadPercentage)
		}
	}
	if curve.PeakDay.LoadPercentage < curve.AverageLoad {
		t.Fatalf("peak %.1f below average %.1f", curve.PeakDay.LoadPercentage, curve.AverageLoad)
	}
}
