package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultWeatherRPS     = 1
	DefaultCatalogRPS     = 5
	DefaultMaxDistance    = 2
	DefaultLogLevel       = "WARN"
)

// AppConfig is built once at startup and not modified afterwards.
type AppConfig struct {
	WeatherAPIKey  string `yaml:"weather_api_key" validate:"required"`
	WeatherBaseURL string `yaml:"weather_base_url" validate:"required,url"`

	// Music catalog credential pair.
	ClientID       string `yaml:"client_id" validate:"required"`
	ClientSecret   string `yaml:"client_secret" validate:"required"`
	CatalogBaseURL string `yaml:"catalog_base_url" validate:"omitempty,url"`

	HTTPTimeout       time.Duration `yaml:"-" validate:"gt=0"`
	WeatherMaxRetries int           `yaml:"weather_max_retries" validate:"gte=0,lte=10"`
	WeatherRPS        float64       `yaml:"weather_rps" validate:"gt=0"`
	CatalogRPS        float64       `yaml:"catalog_rps" validate:"gt=0"`

	// Spelling correction.
	CorrectionMaxDistance int    `yaml:"correction_max_distance" validate:"gte=0,lte=5"`
	LocationWordlist      string `yaml:"location_wordlist"`

	LogLevel string `yaml:"log_level" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// fileConfig mirrors AppConfig for YAML; durations are written as strings ("10s").
type fileConfig struct {
	AppConfig   `yaml:",inline"`
	HTTPTimeout string `yaml:"http_timeout"`
}

var validate = validator.New()

// Load reads the optional YAML file named by ASSISTANT_CONFIG, then lets
// environment variables override individual values.
func Load() (*AppConfig, error) {
	return LoadFile(os.Getenv("ASSISTANT_CONFIG"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		WeatherBaseURL:        DefaultWeatherBaseURL,
		HTTPTimeout:           DefaultHTTPTimeout,
		WeatherRPS:            DefaultWeatherRPS,
		CatalogRPS:            DefaultCatalogRPS,
		CorrectionMaxDistance: DefaultMaxDistance,
		LogLevel:              DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := applyYAML(cfg, data); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

func applyYAML(cfg *AppConfig, data []byte) error {
	fc := fileConfig{AppConfig: *cfg}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http_timeout: %w", err)
		}
		fc.AppConfig.HTTPTimeout = d
	} else {
		fc.AppConfig.HTTPTimeout = cfg.HTTPTimeout
	}
	*cfg = fc.AppConfig
	return nil
}

func applyEnv(cfg *AppConfig) error {
	cfg.WeatherAPIKey = getenvDefault("WEATHER_API_KEY", cfg.WeatherAPIKey)
	cfg.WeatherBaseURL = getenvDefault("WEATHER_BASE_URL", cfg.WeatherBaseURL)
	cfg.ClientID = getenvDefault("CLIENT_ID", cfg.ClientID)
	cfg.ClientSecret = getenvDefault("CLIENT_SECRET", cfg.ClientSecret)
	cfg.CatalogBaseURL = getenvDefault("CATALOG_BASE_URL", cfg.CatalogBaseURL)
	cfg.LocationWordlist = getenvDefault("LOCATION_WORDLIST", cfg.LocationWordlist)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", cfg.HTTPTimeout.String()))
	if err != nil {
		return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.WeatherMaxRetries = getenvInt("WEATHER_MAX_RETRIES", cfg.WeatherMaxRetries)
	cfg.CorrectionMaxDistance = getenvInt("CORRECTION_MAX_DISTANCE", cfg.CorrectionMaxDistance)
	cfg.WeatherRPS = getenvFloat("WEATHER_RPS", cfg.WeatherRPS)
	cfg.CatalogRPS = getenvFloat("CATALOG_RPS", cfg.CatalogRPS)
	return nil
}

// describe turns validator output into one line naming each offending field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
