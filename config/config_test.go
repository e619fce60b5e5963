package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Prometheus.URL)
	assert.Equal(t, 10*time.Second, cfg.Prometheus.QueryTimeout)
	assert.Equal(t, "http://localhost:3000", cfg.Grafana.URL)
	assert.Equal(t, "now-1h", cfg.Grafana.RangeFrom)
	assert.Equal(t, "now", cfg.Grafana.RangeTo)
	assert.Equal(t, "5m", cfg.Translator.DefaultWindow)
	assert.Empty(t, cfg.Translator.RulesFile)
	assert.True(t, cfg.Sampler.Enabled)
	assert.Equal(t, "*/5 * * * * *", cfg.Sampler.Schedule)
}

func TestNewConfig_EnvOverride(t *testing.T) {
	t.Setenv("PROMETHEUS_URL", "http://prometheus.internal:9090")
	t.Setenv("GRAFANA_URL", "http://grafana.internal:3000")
	t.Setenv("DEFAULT_TIME_WINDOW", "1m")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://prometheus.internal:9090", cfg.Prometheus.URL)
	assert.Equal(t, "http://grafana.internal:3000", cfg.Grafana.URL)
	assert.Equal(t, "1m", cfg.Translator.DefaultWindow)
}
