package weather

import (
	"context"
	"errors"
)

var (
	// ErrWeatherUnavailable covers transport failures and non-success statuses.
	ErrWeatherUnavailable = errors.New("weather unavailable")
	// ErrMalformedResponse means the provider payload is missing expected fields.
	ErrMalformedResponse = errors.New("malformed weather response")
)

// Provider abstracts the weather data source. Locations are free text as typed by the user.
type Provider interface {
	Name() string
	// FetchForecast returns the raw multi-day feed in chronological order.
	FetchForecast(ctx context.Context, location string) ([]RawForecastPoint, error)
	FetchCurrent(ctx context.Context, location string) (CurrentWeatherSnapshot, error)
}
