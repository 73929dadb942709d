package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"ASSISTANT_CONFIG", "WEATHER_API_KEY", "WEATHER_BASE_URL", "CLIENT_ID", "CLIENT_SECRET",
	"CATALOG_BASE_URL", "HTTP_TIMEOUT", "WEATHER_MAX_RETRIES", "WEATHER_RPS", "CATALOG_RPS",
	"CORRECTION_MAX_DISTANCE", "LOCATION_WORDLIST", "LOG_LEVEL",
}

// clearEnv blanks every key so values from the host never leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("CLIENT_ID", "id")
	t.Setenv("CLIENT_SECRET", "secret")
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "owm-key", cfg.WeatherAPIKey)
	assert.Equal(t, DefaultWeatherBaseURL, cfg.WeatherBaseURL)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Empty(t, cfg.CatalogBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.WeatherMaxRetries)
	assert.Equal(t, 1.0, cfg.WeatherRPS)
	assert.Equal(t, 5.0, cfg.CatalogRPS)
	assert.Equal(t, 2, cfg.CorrectionMaxDistance)
	assert.Empty(t, cfg.LocationWordlist)
	assert.Equal(t, "WARN", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("WEATHER_BASE_URL", "http://127.0.0.1:9999/data/2.5")
	t.Setenv("CATALOG_BASE_URL", "http://127.0.0.1:9998/v1/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("WEATHER_MAX_RETRIES", "2")
	t.Setenv("WEATHER_RPS", "0.5")
	t.Setenv("CATALOG_RPS", "1.5")
	t.Setenv("CORRECTION_MAX_DISTANCE", "1")
	t.Setenv("LOCATION_WORDLIST", "/tmp/cities.txt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/data/2.5", cfg.WeatherBaseURL)
	assert.Equal(t, "http://127.0.0.1:9998/v1/", cfg.CatalogBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.WeatherMaxRetries)
	assert.Equal(t, 0.5, cfg.WeatherRPS)
	assert.Equal(t, 1.5, cfg.CatalogRPS)
	assert.Equal(t, 1, cfg.CorrectionMaxDistance)
	assert.Equal(t, "/tmp/cities.txt", cfg.LocationWordlist)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadUnparsableNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("WEATHER_MAX_RETRIES", "many")
	t.Setenv("CATALOG_RPS", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.WeatherMaxRetries)
	assert.Equal(t, 5.0, cfg.CatalogRPS)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
weather_api_key: from-file
client_id: file-id
client_secret: file-secret
http_timeout: 4s
catalog_rps: 2
log_level: INFO
`)
	t.Setenv("ASSISTANT_CONFIG", path)
	t.Setenv("CLIENT_ID", "env-id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.WeatherAPIKey)
	assert.Equal(t, "env-id", cfg.ClientID, "env wins over file")
	assert.Equal(t, "file-secret", cfg.ClientSecret)
	assert.Equal(t, 4*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.0, cfg.CatalogRPS)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, DefaultWeatherBaseURL, cfg.WeatherBaseURL, "unset keys keep defaults")
	assert.Equal(t, 2, cfg.CorrectionMaxDistance)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = LoadFile(writeYAML(t, "weather_api_key: [unterminated"))
	assert.ErrorContains(t, err, "parse config file")

	_, err = LoadFile(writeYAML(t, "http_timeout: soon\n"))
	assert.ErrorContains(t, err, "invalid http_timeout")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing weather key", env: map[string]string{"WEATHER_API_KEY": ""}, wantErr: "WeatherAPIKey"},
		{name: "missing client id", env: map[string]string{"CLIENT_ID": ""}, wantErr: "ClientID"},
		{name: "missing client secret", env: map[string]string{"CLIENT_SECRET": ""}, wantErr: "ClientSecret"},
		{name: "bad base url", env: map[string]string{"WEATHER_BASE_URL": "not a url"}, wantErr: "WeatherBaseURL"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "chatty"}, wantErr: "LogLevel"},
		{name: "zero rps", env: map[string]string{"CATALOG_RPS": "0"}, wantErr: "CatalogRPS"},
		{name: "negative retries", env: map[string]string{"WEATHER_MAX_RETRIES": "-1"}, wantErr: "WeatherMaxRetries"},
		{name: "bad timeout", env: map[string]string{"HTTP_TIMEOUT": "ten"}, wantErr: "invalid HTTP_TIMEOUT"},
		{name: "zero timeout", env: map[string]string{"HTTP_TIMEOUT": "0s"}, wantErr: "HTTPTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
