package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-music-assistant/internal/common"
	"github.com/i474232898/weather-music-assistant/internal/weather"
)

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap.
// Temperatures are requested in the API's default unit (Kelvin).
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)

// Option customises an OpenWeatherProvider.
type Option func(*OpenWeatherProvider)

// WithBaseURL points the provider at another API root, e.g. a local fake.
func WithBaseURL(u string) Option {
	return func(p *OpenWeatherProvider) {
		if u != "" {
			p.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithMaxRetries allows bounded retries of transient failures.
func WithMaxRetries(n int) Option {
	return func(p *OpenWeatherProvider) {
		p.httpCfg.Backoff.MaxRetries = n
	}
}

// WithRateLimit throttles outbound calls to rps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(p *OpenWeatherProvider) {
		if rps > 0 {
			p.httpCfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: defaultOpenWeatherURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      0,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("openweather"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) get(ctx context.Context, endpoint, location string, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: openweather api key is not configured", weather.ErrWeatherUnavailable)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", location)
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("%w: %w", weather.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	return nil
}

// FetchForecast reads the 5-day / 3-hour feed.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, location string) ([]weather.RawForecastPoint, error) {
	var payload struct {
		List *[]struct {
			Dt   *int64 `json:"dt"`
			Main *struct {
				Temp *float64 `json:"temp"`
			} `json:"main"`
			Rain *struct {
				ThreeH *float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	if err := p.get(ctx, "forecast", location, &payload); err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, fmt.Errorf("%w: forecast has no list", weather.ErrMalformedResponse)
	}

	points := make([]weather.RawForecastPoint, 0, len(*payload.List))
	for i, item := range *payload.List {
		if item.Dt == nil || item.Main == nil || item.Main.Temp == nil {
			return nil, fmt.Errorf("%w: forecast entry %d lacks dt or main.temp", weather.ErrMalformedResponse, i)
		}

		point := weather.RawForecastPoint{
			Timestamp:         time.Unix(*item.Dt, 0).UTC(),
			TemperatureKelvin: *item.Main.Temp,
		}
		if item.Rain != nil && item.Rain.ThreeH != nil {
			mm := *item.Rain.ThreeH
			point.RainMm3h = &mm
		}
		points = append(points, point)
	}

	return points, nil
}

// FetchCurrent reads current conditions.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, location string) (weather.CurrentWeatherSnapshot, error) {
	var payload struct {
		Main *struct {
			Temp      *float64 `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
			Humidity  *float64 `json:"humidity"`
		} `json:"main"`
		Wind *struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Rain *struct {
			OneH *float64 `json:"1h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := p.get(ctx, "weather", location, &payload); err != nil {
		return weather.CurrentWeatherSnapshot{}, err
	}

	m := payload.Main
	if m == nil || m.Temp == nil || m.FeelsLike == nil || m.Humidity == nil {
		return weather.CurrentWeatherSnapshot{}, fmt.Errorf("%w: current weather lacks main fields", weather.ErrMalformedResponse)
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		return weather.CurrentWeatherSnapshot{}, fmt.Errorf("%w: current weather lacks wind.speed", weather.ErrMalformedResponse)
	}
	if len(payload.Weather) == 0 {
		return weather.CurrentWeatherSnapshot{}, fmt.Errorf("%w: current weather lacks a description", weather.ErrMalformedResponse)
	}

	rainMm := 0.0
	if payload.Rain != nil && payload.Rain.OneH != nil {
		rainMm = *payload.Rain.OneH
	}

	return weather.CurrentWeatherSnapshot{
		TemperatureCelsius: weather.KelvinToCelsius(*m.Temp),
		FeelsLikeCelsius:   weather.KelvinToCelsius(*m.FeelsLike),
		WindSpeed:          *payload.Wind.Speed,
		RainLastHourMm:     rainMm,
		HumidityPercent:    *m.Humidity,
		IsSunny:            common.HasAny(payload.Weather[0].Description, "clear"),
	}, nil
}
