// Package render draws forecasts and track listings for a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/i474232898/weather-music-assistant/internal/music"
	"github.com/i474232898/weather-music-assistant/internal/weather"
)

const (
	chartHeight = 10
	chartWidth  = 40
)

// Terminal renders plain-text charts and tables.
type Terminal struct{}

// ForecastTitle is the heading printed above a forecast chart.
func ForecastTitle(location string) string {
	return fmt.Sprintf("5-Day Weather Forecast for %s", location)
}

// Forecast draws temperature and rain as two series, followed by a per-day table.
// Nothing is drawn for an empty forecast.
func (Terminal) Forecast(w io.Writer, location string, days []weather.DailyForecast) error {
	if len(days) == 0 {
		return nil
	}

	temps := make([]float64, len(days))
	rains := make([]float64, len(days))
	for i, d := range days {
		temps[i] = d.TemperatureCelsius
		rains[i] = d.RainMm
	}

	opts := []asciigraph.Option{
		asciigraph.Height(chartHeight),
		asciigraph.Caption(ForecastTitle(location) + " (upper: Temperature °C, lower: Rain mm)"),
	}
	if len(days) > 1 {
		opts = append(opts, asciigraph.Width(chartWidth))
	}

	if _, err := fmt.Fprintln(w, asciigraph.PlotMany([][]float64{temps, rains}, opts...)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Temperature (°C)", "Rain (mm)"})
	table.SetAutoFormatHeaders(false)
	for _, d := range days {
		table.Append([]string{
			d.DateKey(),
			strconv.FormatFloat(d.TemperatureCelsius, 'f', 2, 64),
			strconv.FormatFloat(d.RainMm, 'f', 2, 64),
		})
	}
	table.Render()
	return nil
}

// Tracks prints a numbered song/artist table.
func (Terminal) Tracks(w io.Writer, items []music.Item) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Song Name", "Artist"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for i, it := range items {
		table.Append([]string{strconv.Itoa(i), it.Title, it.Attribution})
	}
	table.Render()
	return nil
}
