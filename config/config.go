package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Prometheus PrometheusConfig
	Grafana    GrafanaConfig
	Translator TranslatorConfig
	Sampler    SamplerConfig
}

type ServerConfig struct {
	Port string
}

type PrometheusConfig struct {
	URL          string
	QueryTimeout time.Duration
}

// GrafanaConfig drives deep-link construction only; the service never calls
// Grafana at runtime. An empty URL disables deep links.
type GrafanaConfig struct {
	URL       string
	RangeFrom string
	RangeTo   string
}

type TranslatorConfig struct {
	DefaultWindow string
	RulesFile     string // optional YAML rule set, compiled-in defaults when empty
}

type SamplerConfig struct {
	Enabled  bool
	Schedule string
}

func NewConfig() (*Config, error) {
	// Configure Viper to read .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Enable automatic environment variable loading
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("PROMETHEUS_URL", "http://localhost:9090")
	viper.SetDefault("PROMETHEUS_QUERY_TIMEOUT", "10s")
	viper.SetDefault("GRAFANA_URL", "http://localhost:3000")
	viper.SetDefault("GRAFANA_RANGE_FROM", "now-1h")
	viper.SetDefault("GRAFANA_RANGE_TO", "now")
	viper.SetDefault("DEFAULT_TIME_WINDOW", "5m")
	viper.SetDefault("RULES_FILE", "")
	viper.SetDefault("SAMPLE_METRICS_ENABLED", true)
	viper.SetDefault("SAMPLE_METRICS_SCHEDULE", "*/5 * * * * *") // Every 5 seconds

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config
	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Prometheus.URL = viper.GetString("PROMETHEUS_URL")
	config.Prometheus.QueryTimeout = viper.GetDuration("PROMETHEUS_QUERY_TIMEOUT")

	config.Grafana.URL = viper.GetString("GRAFANA_URL")
	config.Grafana.RangeFrom = viper.GetString("GRAFANA_RANGE_FROM")
	config.Grafana.RangeTo = viper.GetString("GRAFANA_RANGE_TO")

	config.Translator.DefaultWindow = viper.GetString("DEFAULT_TIME_WINDOW")
	config.Translator.RulesFile = viper.GetString("RULES_FILE")

	config.Sampler.Enabled = viper.GetBool("SAMPLE_METRICS_ENABLED")
	config.Sampler.Schedule = viper.GetString("SAMPLE_METRICS_SCHEDULE")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
