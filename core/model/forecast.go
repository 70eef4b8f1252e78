package model

// DemandForecastPoint is one projected day of service demand for a
// workshop.
type DemandForecastPoint struct {
	Date           string  `json:"date"`
	DayOfWeek      string  `json:"day_of_week"`
	ForecastDemand int     `json:"forecast_demand"`
	LowerBound     int     `json:"lower_bound"`
	UpperBound     int     `json:"upper_bound"`
	Confidence     float64 `json:"confidence"`
}

// SlotRecommendation is the forecaster's advisory pick of a service day.
type SlotRecommendation struct {
	RecommendedDate  string   `json:"recommended_date"`
	ForecastDemand   int      `json:"forecast_demand"`
	Reasoning        string   `json:"reasoning"`
	AlternativeDates []string `json:"alternative_dates"`
}

// LoadCurvePoint expresses one forecast day as a percentage of daily
// capacity.
type LoadCurvePoint struct {
	Date           string  `json:"date"`
	Demand         int     `json:"demand"`
	Capacity       int     `json:"capacity"`
	LoadPercentage float64 `json:"load_percentage"`
	Status         string  `json:"status"`
}

// LoadCurve is the projected utilisation of a workshop over several days.
type LoadCurve struct {
	WorkshopID  string           `json:"workshop_id"`
	Curve       []LoadCurvePoint `json:"load_curve"`
	AverageLoad float64          `json:"average_load"`
	PeakDay     LoadCurvePoint   `json:"peak_day"`
}
