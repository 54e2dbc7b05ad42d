// Package config loads the process configuration from the environment.
// Variables are prefixed with STXSCAN_; a .env file in the working directory
// is honored when present.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every configuration variable.
const envPrefix = "stxscan"

// Config is the full process configuration.
type Config struct {
	// Network selects mainnet or testnet.
	Network string `envconfig:"NETWORK" default:"mainnet"`
	// APIBaseURL overrides the network's default Hiro API endpoint.
	APIBaseURL string `envconfig:"API_BASE_URL"`
	// CategoryContract is the fully qualified id of the category mapping
	// contract, "ADDRESS.name". Empty disables category reads and writes.
	CategoryContract string `envconfig:"CATEGORY_CONTRACT"`
	// WalletAgentURL is the base URL of the wallet signing agent. Empty
	// disables category writes.
	WalletAgentURL string `envconfig:"WALLET_AGENT_URL"`

	// PageLimit is the number of transactions fetched per history page.
	PageLimit int `envconfig:"PAGE_LIMIT" default:"20"`
	// PollInterval is the follow-mode polling cadence in seconds.
	PollIntervalSeconds int `envconfig:"POLL_INTERVAL_SECONDS" default:"30"`

	// LogLevel is the minimum emitted log level.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// TelemetryEnabled turns on the OpenTelemetry exporters. The OTLP
	// endpoint is taken from the standard OTEL_* variables.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// Load reads the configuration from the environment, seeding it from a .env
// file when one exists.
func Load() (Config, error) {
	// A missing .env file is not an error; explicit environment wins.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: processing environment: %w", err)
	}
	return cfg, nil
}
