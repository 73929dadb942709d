package weather

import (
	"time"
)

// KelvinOffset converts between Kelvin and Celsius.
const KelvinOffset = 273.15

// KelvinToCelsius converts a provider temperature to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - KelvinOffset
}

// RawForecastPoint is one timestamped sample from the provider's multi-day feed.
// RainMm3h is nil when the provider omitted the rain block for that interval.
type RawForecastPoint struct {
	Timestamp         time.Time
	TemperatureKelvin float64
	RainMm3h          *float64
}

// DailyForecast is one normalized per-calendar-day summary.
// Date is midnight UTC of the day it describes.
type DailyForecast struct {
	Date               time.Time `json:"date"`
	TemperatureCelsius float64   `json:"temperatureC"`
	RainMm             float64   `json:"rainMm"`
}

// DateKey returns the calendar date as YYYY-MM-DD.
func (d DailyForecast) DateKey() string {
	return d.Date.Format(dateLayout)
}

// CurrentWeatherSnapshot is the current-conditions view used for detail display
// and the clothing advice.
type CurrentWeatherSnapshot struct {
	TemperatureCelsius float64 `json:"temperatureC"`
	FeelsLikeCelsius   float64 `json:"feelsLikeC"`
	WindSpeed          float64 `json:"windSpeed"`
	RainLastHourMm     float64 `json:"rainLastHourMm"`
	HumidityPercent    float64 `json:"humidityPercent"`
	IsSunny            bool    `json:"isSunny"`
}
