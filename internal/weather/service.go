package weather

import (
	"context"
	"fmt"
	"strings"

	"github.com/i474232898/weather-music-assistant/internal/logger"
)

// Service pairs a Provider with forecast normalization.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// GetForecast fetches the raw feed for location and returns one entry per day.
// An empty feed is not an error; callers should skip the chart in that case.
func (s *Service) GetForecast(ctx context.Context, location string) ([]DailyForecast, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no weather provider configured", ErrWeatherUnavailable)
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("location must not be empty")
	}

	logger.Debugf("GetForecast called for %q via %s", location, s.provider.Name())

	points, err := s.provider.FetchForecast(ctx, location)
	if err != nil {
		logger.Warnf("provider %s forecast failed for %q: %v", s.provider.Name(), location, err)
		return nil, err
	}

	days := Normalize(points)
	logger.Debugf("normalized %d forecast points into %d days for %q", len(points), len(days), location)
	return days, nil
}

// GetCurrent fetches current conditions for location.
func (s *Service) GetCurrent(ctx context.Context, location string) (CurrentWeatherSnapshot, error) {
	if s.provider == nil {
		return CurrentWeatherSnapshot{}, fmt.Errorf("%w: no weather provider configured", ErrWeatherUnavailable)
	}

	snap, err := s.provider.FetchCurrent(ctx, location)
	if err != nil {
		logger.Warnf("provider %s current weather failed for %q: %v", s.provider.Name(), location, err)
		return CurrentWeatherSnapshot{}, err
	}
	return snap, nil
}
