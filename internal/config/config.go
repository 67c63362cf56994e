package config

import (
	"github.com/caarlos0/env/v11"
)

// Config is read by synthctl.
type Config struct {
	// JournalPath overrides ~/.config/synthonia/synthonia.db.
	JournalPath string `env:"SYNTHONIA_DB"`
	// DatabaseURL is only needed by the migrate command.
	DatabaseURL string `env:"DATABASE_URL"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
