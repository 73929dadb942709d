// Package dialog runs the interactive recommendation session.
package dialog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/i474232898/weather-music-assistant/internal/common"
	"github.com/i474232898/weather-music-assistant/internal/logger"
	"github.com/i474232898/weather-music-assistant/internal/music"
	"github.com/i474232898/weather-music-assistant/internal/weather"
)

const (
	promptLocation = "Where is your desired location: "
	promptMenu     = "We can also suggest some songs based on the location or the weather. " +
		"What is your choice? (weather/location) [type 'exit' to quit]: "
	promptMood = "How are you feeling today (happy/upbeat/mellow/rainy/neutral)? "
	promptLink = "Would you like the link to the suggested playlist? (yes/no): "

	msgNotUnderstood = "I did not catch that. Try again."
)

// Corrector is the spelling-correction filter applied to the location and menu answers.
type Corrector interface {
	Correct(text string) string
}

// Renderer draws the forecast chart and the track table.
type Renderer interface {
	Forecast(w io.Writer, location string, days []weather.DailyForecast) error
	Tracks(w io.Writer, items []music.Item) error
}

type identity struct{}

func (identity) Correct(text string) string { return text }

// Options wires a Controller. Nil correctors leave input untouched.
type Options struct {
	In                io.Reader
	Out               io.Writer
	Weather           *weather.Service
	Music             *music.Engine
	Renderer          Renderer
	MenuCorrector     Corrector
	LocationCorrector Corrector
}

// Controller is the session state machine. It is not safe for concurrent use;
// only its own turn loop mutates the state.
type Controller struct {
	in          *bufio.Scanner
	out         io.Writer
	weather     *weather.Service
	music       *music.Engine
	renderer    Renderer
	menuFix     Corrector
	locationFix Corrector

	state     State
	location  string
	sessionID string
}

// New creates a Controller in StateStart.
func New(opts Options) *Controller {
	c := &Controller{
		in:          bufio.NewScanner(opts.In),
		out:         opts.Out,
		weather:     opts.Weather,
		music:       opts.Music,
		renderer:    opts.Renderer,
		menuFix:     opts.MenuCorrector,
		locationFix: opts.LocationCorrector,
		state:       StateStart,
		sessionID:   uuid.NewString(),
	}
	if c.menuFix == nil {
		c.menuFix = identity{}
	}
	if c.locationFix == nil {
		c.locationFix = identity{}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Location returns the corrected location, empty before it is known.
func (c *Controller) Location() string { return c.location }

// Run steps the controller until it reaches StateExited.
func (c *Controller) Run(ctx context.Context) error {
	logger.Infof("session %s started", c.sessionID)
	for c.state != StateExited {
		if err := c.Step(ctx); err != nil {
			return err
		}
	}
	logger.Infof("session %s finished", c.sessionID)
	return nil
}

// Step performs exactly one transition. It is a no-op once Exited.
// Provider failures are reported to the user, never returned.
func (c *Controller) Step(ctx context.Context) error {
	from := c.state
	var err error

	switch c.state {
	case StateStart:
		err = c.start(ctx)
	case StateAwaitingDetailChoice:
		err = c.detailChoice(ctx)
	case StateMenuLoop:
		err = c.menu(ctx)
	case StateExited:
		return nil
	default:
		return fmt.Errorf("invalid dialog state %s", c.state)
	}

	if from != c.state {
		logger.Debugf("session %s: %s -> %s", c.sessionID, from, c.state)
	}
	return err
}

// ask prints a prompt and reads one line. ok is false once input is exhausted.
func (c *Controller) ask(prompt string) (answer string, ok bool) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			logger.Warnf("session %s: reading input: %v", c.sessionID, err)
		}
		c.println()
		return "", false
	}
	return c.in.Text(), true
}

func (c *Controller) start(ctx context.Context) error {
	answer, ok := c.ask(promptLocation)
	if !ok {
		return c.exit()
	}

	location := strings.TrimSpace(c.locationFix.Correct(answer))
	if location == "" {
		c.println("Please enter a location.")
		return nil
	}
	c.location = location
	logger.Infof("session %s: location %q (typed %q)", c.sessionID, location, answer)

	c.showForecast(ctx)
	c.state = StateAwaitingDetailChoice
	return nil
}

func (c *Controller) showForecast(ctx context.Context) {
	days, err := c.weather.GetForecast(ctx, c.location)
	if err != nil {
		c.printf("Failed to retrieve the forecast for %s: %v\n", c.location, err)
		return
	}
	if len(days) == 0 {
		c.printf("No forecast data available for %s.\n", c.location)
		return
	}
	if err := c.renderer.Forecast(c.out, c.location, days); err != nil {
		logger.Errorf("session %s: rendering forecast: %v", c.sessionID, err)
		c.println("Could not draw the forecast chart.")
	}
}

func (c *Controller) detailChoice(ctx context.Context) error {
	answer, ok := c.ask(fmt.Sprintf("Do you want detailed weather information for %s? (yes/no): ", c.location))
	if !ok {
		return c.exit()
	}
	if common.IsYes(answer) {
		c.showDetails(ctx)
	}
	c.state = StateMenuLoop
	return nil
}

func (c *Controller) showDetails(ctx context.Context) {
	snap, err := c.weather.GetCurrent(ctx, c.location)
	if err != nil {
		c.printf("Failed to retrieve current weather for %s: %v\n", c.location, err)
		return
	}

	sunny := "No"
	if snap.IsSunny {
		sunny = "Yes"
	}
	c.printf("Weather details for %s:\n", c.location)
	c.printf("Temperature: %.2f°C\n", snap.TemperatureCelsius)
	c.printf("Wind Speed: %g m/s\n", snap.WindSpeed)
	c.printf("Rain (last hour): %g mm\n", snap.RainLastHourMm)
	c.printf("Feels Like: %.2f°C\n", snap.FeelsLikeCelsius)
	c.printf("Humidity: %g%%\n", snap.HumidityPercent)
	c.printf("Sunny: %s\n", sunny)
	c.printf("Recommendation: %s\n", weather.ClothingAdvice(snap))
}

func (c *Controller) menu(ctx context.Context) error {
	answer, ok := c.ask(promptMenu)
	if !ok {
		return c.exit()
	}

	corrected := common.Normalize(c.menuFix.Correct(answer))
	choice, err := ParseMenuChoice(corrected)
	if err != nil {
		logger.Debugf("session %s: %v (typed %q)", c.sessionID, err, answer)
		c.println(msgNotUnderstood)
		return nil
	}

	switch choice {
	case ChoiceWeather:
		return c.recommendByMood(ctx)
	case ChoiceLocation:
		return c.recommendByLocation(ctx)
	default:
		return c.exit()
	}
}

func (c *Controller) recommendByMood(ctx context.Context) error {
	var mood music.Mood
	for {
		answer, ok := c.ask(promptMood)
		if !ok {
			return c.exit()
		}
		m, err := music.ParseMood(answer)
		if err == nil {
			mood = m
			break
		}
		c.println("Please choose one of: happy, upbeat, mellow, rainy, neutral.")
	}

	res, err := c.music.Recommend(ctx, music.MoodQuery(mood))
	if err != nil {
		c.printf("Could not fetch %s playlists: %v\n", mood, err)
		return nil
	}
	if len(res.Items) == 0 {
		c.printf("No %s playlists found.\n", mood)
		return nil
	}

	c.printf("Here are some %s playlists you might like in %s:\n", mood, c.location)
	for _, it := range res.Items {
		c.printf("%s: %s\n", it.Title, it.Link)
	}
	return nil
}

func (c *Controller) recommendByLocation(ctx context.Context) error {
	res, err := c.music.Recommend(ctx, music.LocationQuery(c.location))
	switch {
	case errors.Is(err, music.ErrNotFound):
		c.printf("No playlists found for %s.\n", c.location)
		return nil
	case err != nil:
		c.printf("Could not fetch songs for %s: %v\n", c.location, err)
		return nil
	case len(res.Items) == 0:
		c.printf("The top playlist for %s has no tracks.\n", c.location)
		return nil
	}

	c.printf("Top %d Songs in %s:\n", music.MaxLocationTracks, c.location)
	if err := c.renderer.Tracks(c.out, res.Items); err != nil {
		logger.Errorf("session %s: rendering tracks: %v", c.sessionID, err)
	}

	answer, ok := c.ask(promptLink)
	if !ok {
		return c.exit()
	}
	if common.IsYes(answer) {
		c.printf("Playlist Link: %s\n", music.PlaylistURL(res.PlaylistID))
	}
	return nil
}

func (c *Controller) exit() error {
	c.state = StateExited
	if c.location == "" {
		c.println("Goodbye!")
		return nil
	}
	c.printf("Have a great time in %s!\n", c.location)
	return nil
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}
