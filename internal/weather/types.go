package weather

import (
	"context"
	"time"
)

// Current is a normalized current-conditions reading for one place.
type Current struct {
	Place       string
	Country     string
	TempC       float64
	HumidityPct int
	WindMS      float64
}

// ForecastEntry is one 3-hour forecast slice.
type ForecastEntry struct {
	Time      time.Time
	TempC     float64
	Condition string
}

// Service abstracts the weather data source. Failure is returned, never
// panicked, and always means "data unavailable now".
type Service interface {
	Current(ctx context.Context, city string) (*Current, error)
	Forecast(ctx context.Context, city string) ([]ForecastEntry, error)
}

// Recorder counts provider calls; satisfied by metrics.Metrics.
type Recorder interface {
	ProviderRequest(endpoint, result string)
}
