package forecast

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

const (
	// window is the number of trailing observations feeding the moving
	// average and trend.
	window = 7
	// dailyCapacity is the nominal number of jobs a workshop absorbs per
	// day, used by the load curve only.
	dailyCapacity = 10
	// seedDays is the length of the synthetic history.
	seedDays = 30
)

// Forecaster projects near-term service demand per workshop from a rolling
// daily history. It only biases slot choice and never blocks a booking.
type Forecaster struct {
	mu      sync.Mutex
	history map[string][]float64

	now func() time.Time
	log logger.Logger
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Forecaster) { f.now = now }
}

// NewForecaster creates a forecaster with a synthetic demand history for
// the given workshop ids. Seeding is deterministic for a given seed so
// forecasts are reproducible; production deployments are expected to feed
// real observations through Observe instead.
func NewForecaster(workshopIDs []string, seed int64, log logger.Logger, opts ...Option) *Forecaster {
	if log == nil {
		log = logger.Nop{}
	}
	f := &Forecaster{
		history: make(map[string][]float64, len(workshopIDs)),
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(f)
	}
	rng := rand.New(rand.NewSource(seed))
	for _, id := range workshopIDs {
		f.history[id] = syntheticSeries(rng)
	}
	log.Infof("demand forecaster initialized for %d workshops", len(workshopIDs))
	return f
}

// syntheticSeries builds a plausible 30-day demand series with a base
// level, a mild trend, weekly seasonality and noise.
func syntheticSeries(rng *rand.Rand) []float64 {
	base := float64(5 + rng.Intn(10))
	trend := []float64{-0.1, 0, 0.1}[rng.Intn(3)]
	seasonality := rng.Float64() * 3

	series := make([]float64, 0, seedDays)
	for day := 0; day < seedDays; day++ {
		demand := base + trend*float64(day) + seasonality*math.Sin(float64(day)/window*2*math.Pi)
		demand = math.Floor(demand + rng.NormFloat64()*2)
		if demand < 0 {
			demand = 0
		}
		series = append(series, demand)
	}
	return series
}

// Observe appends a demand observation for a workshop. This is the
// ingestion hook for an external metrics source.
func (f *Forecaster) Observe(workshopID string, demand float64) {
	if demand < 0 {
		demand = 0
	}
	f.mu.Lock()
	f.history[workshopID] = append(f.history[workshopID], demand)
	f.mu.Unlock()
}

// ForecastDemand projects daysAhead days of demand for a workshop using a
// moving average with linear trend and day-of-week seasonality. Workshops
// without history get a flat default forecast.
func (f *Forecaster) ForecastDemand(workshopID string, daysAhead int) []model.DemandForecastPoint {
	f.mu.Lock()
	history := f.history[workshopID]
	f.mu.Unlock()

	now := f.now()
	if len(history) == 0 {
		return defaultForecast(now, daysAhead)
	}

	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	avg := stat.Mean(recent, nil)
	trend := (recent[len(recent)-1] - recent[0]) / window
	stddev := stat.StdDev(recent, nil)
	if math.IsNaN(stddev) {
		stddev = 0
	}

	points := make([]model.DemandForecastPoint, 0, daysAhead)
	for day := 0; day < daysAhead; day++ {
		value := avg + trend*float64(day)

		date := now.AddDate(0, 0, day)
		switch date.Weekday() {
		case time.Saturday, time.Sunday:
			value *= 0.7
		case time.Monday:
			value *= 1.2
		}

		demand := int(value)
		if demand < 0 {
			demand = 0
		}
		lower := demand - int(stddev)
		if lower < 0 {
			lower = 0
		}
		points = append(points, model.DemandForecastPoint{
			Date:           date.Format("2006-01-02"),
			DayOfWeek:      date.Weekday().String(),
			ForecastDemand: demand,
			LowerBound:     lower,
			UpperBound:     demand + int(stddev),
			Confidence:     0.85,
		})
	}
	return points
}

func defaultForecast(now time.Time, daysAhead int) []model.DemandForecastPoint {
	points := make([]model.DemandForecastPoint, 0, daysAhead)
	for day := 0; day < daysAhead; day++ {
		date := now.AddDate(0, 0, day)
		points = append(points, model.DemandForecastPoint{
			Date:           date.Format("2006-01-02"),
			DayOfWeek:      date.Weekday().String(),
			ForecastDemand: 8,
			LowerBound:     5,
			UpperBound:     11,
			Confidence:     0.70,
		})
	}
	return points
}

// PredictOptimalSlot recommends a service day for the given risk level:
// high risk takes the earliest day regardless of demand, medium the
// quietest of the next three days, low the quietest day overall.
func (f *Forecaster) PredictOptimalSlot(workshopID, component string, risk model.RiskLevel) model.SlotRecommendation {
	forecasts := f.ForecastDemand(workshopID, window)

	var pick model.DemandForecastPoint
	var reasoning string
	switch risk {
	case model.RiskHigh:
		pick = forecasts[0]
		reasoning = "High risk requires immediate attention"
	case model.RiskMedium:
		pick = minDemand(forecasts[:3])
		reasoning = "Medium risk, balanced with workshop load"
	default:
		pick = minDemand(forecasts)
		reasoning = "Low risk, optimized for minimal wait time"
	}

	alternatives := make([]string, 0, 3)
	for _, p := range forecasts[:3] {
		alternatives = append(alternatives, p.Date)
	}
	return model.SlotRecommendation{
		RecommendedDate:  pick.Date,
		ForecastDemand:   pick.ForecastDemand,
		Reasoning:        reasoning,
		AlternativeDates: alternatives,
	}
}

func minDemand(points []model.DemandForecastPoint) model.DemandForecastPoint {
	best := points[0]
	for _, p := range points[1:] {
		if p.ForecastDemand < best.ForecastDemand {
			best = p
		}
	}
	return best
}

// LoadCurve converts the demand forecast into utilisation percentages of
// the fixed daily capacity, bucketed into low, moderate and high.
func (f *Forecaster) LoadCurve(workshopID string, days int) model.LoadCurve {
	forecasts := f.ForecastDemand(workshopID, days)

	curve := make([]model.LoadCurvePoint, 0, len(forecasts))
	var sum float64
	peak := model.LoadCurvePoint{LoadPercentage: -1}
	for _, fc := range forecasts {
		pct := math.Min(100, float64(fc.ForecastDemand)/dailyCapacity*100)
		status := "low"
		switch {
		case pct >= 80:
			status = "high"
		case pct >= 50:
			status = "moderate"
		}
		point := model.LoadCurvePoint{
			Date:           fc.Date,
			Demand:         fc.ForecastDemand,
			Capacity:       dailyCapacity,
			LoadPercentage: math.Round(pct*10) / 10,
			Status:         status,
		}
		curve = append(curve, point)
		sum += point.LoadPercentage
		if point.LoadPercentage > peak.LoadPercentage {
			peak = point
		}
	}

	avg := 0.0
	if len(curve) > 0 {
		avg = math.Round(sum/float64(len(curve))*10) / 10
	}
	return model.LoadCurve{
		WorkshopID:  workshopID,
		Curve:       curve,
		AverageLoad: avg,
		PeakDay:     peak,
	}
}
