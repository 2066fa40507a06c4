package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/lbarreto/equifinance/internal/participant"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"EquiFinance"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Household struct {
		// Roster spec: "id:DisplayName:color,..." — empty means the
		// built-in leo/cris pair.
		Participants string `envconfig:"PARTICIPANTS"`
	}

	Dashboard struct {
		// Number of months shown in the comparative history chart.
		HistoryMonths int `envconfig:"HISTORY_MONTHS" default:"3"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Dashboard.HistoryMonths < 1 {
		return nil, fmt.Errorf("HISTORY_MONTHS must be at least 1, got %d", cfg.Dashboard.HistoryMonths)
	}

	return &cfg, nil
}

// Roster resolves the configured participant set, falling back to the
// built-in household pair when none is configured.
func (c *Config) Roster() (participant.Set, error) {
	if c.Household.Participants == "" {
		return participant.Default(), nil
	}

	set, err := participant.Parse(c.Household.Participants)
	if err != nil {
		return participant.Set{}, fmt.Errorf("invalid PARTICIPANTS: %w", err)
	}

	return set, nil
}
