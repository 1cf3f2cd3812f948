package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds environment-level settings.
type Service struct {
	Environment     string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

// LaunchDarkly holds the flag-evaluation SDK settings. The SDK key is the
// one credential every mode needs.
type LaunchDarkly struct {
	SDKKey         string `envconfig:"LAUNCHDARKLY_SDK_KEY" required:"true"`
	InitTimeoutSec int    `envconfig:"LAUNCHDARKLY_INIT_TIMEOUT_SEC" default:"5"`
}

// ClickHouse holds the warehouse connection settings. Only required when
// running in warehouse mode; validated by Config.ValidateWarehouse.
type ClickHouse struct {
	Host               string `envconfig:"CLICKHOUSE_HOST"`
	Port               string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database           string `envconfig:"CLICKHOUSE_DB"`
	User               string `envconfig:"CLICKHOUSE_USER" default:""`
	Password           string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS             bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns       int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns       int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetimeSec int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
	Table              string `envconfig:"CLICKHOUSE_METRIC_EVENTS_TABLE" default:"metric_events"`
}

// Simulation holds the journey-loop settings.
type Simulation struct {
	JournalPath string `envconfig:"SIMULATION_JOURNAL_PATH" default:"experiment_assignments.jsonl"`
}

type Config struct {
	Service      Service
	LaunchDarkly LaunchDarkly
	ClickHouse   ClickHouse
	Simulation   Simulation
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// ValidateWarehouse checks the settings that are only mandatory when events
// are inserted into ClickHouse instead of tracked through the SDK.
func (c *Config) ValidateWarehouse() error {
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("CLICKHOUSE_HOST is required in warehouse mode")
	}
	if c.ClickHouse.Database == "" {
		return fmt.Errorf("CLICKHOUSE_DB is required in warehouse mode")
	}
	return nil
}
