package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, defaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, StateBackendFile, cfg.State.Backend)
	assert.Equal(t, "auth-storage", cfg.State.AuthStorageKey)
	assert.Equal(t, "help-storage", cfg.State.HelpStorageKey)
	assert.Equal(t, 30*time.Second, cfg.Polling.HealthInterval)
	assert.Equal(t, 5*time.Minute, cfg.Polling.StatsInterval)
}

func TestFromViperLegacyBaseURL(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("NEXT_PUBLIC_API_BASE_URL", "https://attendance.example.edu/api/")

	cfg := fromViper(v)
	assert.Equal(t, "https://attendance.example.edu/api", cfg.API.BaseURL)

	v.Set("API_BASE_URL", "http://backend:5000/api")
	cfg = fromViper(v)
	assert.Equal(t, "http://backend:5000/api", cfg.API.BaseURL)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 10*time.Second, parseDuration("10s", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitAndTrim(" http://a , ,http://b"))
}
