package weather

import "time"

const dateLayout = "2006-01-02"

// Normalize collapses a chronological feed into one DailyForecast per UTC calendar date.
// The first point seen for a date wins; later points on the same date are ignored.
// Output order is first-appearance order. An empty feed yields an empty, non-nil slice.
func Normalize(points []RawForecastPoint) []DailyForecast {
	seen := make(map[string]struct{})
	days := make([]DailyForecast, 0, len(points))

	for _, p := range points {
		ts := p.Timestamp.UTC()
		key := ts.Format(dateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		rain := 0.0
		if p.RainMm3h != nil {
			rain = *p.RainMm3h
		}

		days = append(days, DailyForecast{
			Date:               time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
			TemperatureCelsius: KelvinToCelsius(p.TemperatureKelvin),
			RainMm:             rain,
		})
	}

	return days
}
