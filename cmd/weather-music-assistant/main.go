package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-music-assistant/internal/config"
	"github.com/i474232898/weather-music-assistant/internal/dialog"
	"github.com/i474232898/weather-music-assistant/internal/logger"
	"github.com/i474232898/weather-music-assistant/internal/music"
	"github.com/i474232898/weather-music-assistant/internal/music/spotify"
	"github.com/i474232898/weather-music-assistant/internal/render"
	"github.com/i474232898/weather-music-assistant/internal/textfix"
	"github.com/i474232898/weather-music-assistant/internal/weather"
	"github.com/i474232898/weather-music-assistant/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	owm := providers.NewOpenWeatherProvider(httpClient, cfg.WeatherAPIKey,
		providers.WithBaseURL(cfg.WeatherBaseURL),
		providers.WithMaxRetries(cfg.WeatherMaxRetries),
		providers.WithRateLimit(cfg.WeatherRPS, 1),
	)
	weatherSvc := weather.NewService(owm)

	catalog := spotify.NewCatalog(httpClient, cfg.ClientID, cfg.ClientSecret,
		spotify.WithAPIURL(cfg.CatalogBaseURL),
		spotify.WithRateLimit(cfg.CatalogRPS, 1),
	)
	engine := music.NewEngine(catalog)

	var locationFix dialog.Corrector
	if cfg.LocationWordlist != "" {
		words, err := textfix.LoadWordlist(cfg.LocationWordlist)
		if err != nil {
			logger.Warnf("location correction disabled: %v", err)
		} else {
			locationFix = textfix.New(words, cfg.CorrectionMaxDistance)
		}
	}

	ctrl := dialog.New(dialog.Options{
		In:                os.Stdin,
		Out:               os.Stdout,
		Weather:           weatherSvc,
		Music:             engine,
		Renderer:          render.Terminal{},
		MenuCorrector:     textfix.New(dialog.MenuKeywords, cfg.CorrectionMaxDistance),
		LocationCorrector: locationFix,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Run(ctx)
	}()

	// Wait for the session to end or a termination signal.
	select {
	case err := <-done:
		if err != nil {
			logger.Errorf("session ended with error: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout, "\nGoodbye!")
	}
}
