package server

import (
	"time"

	"github.com/caarlos0/env/v11"
	appenv "github.com/garrettladley/synthonia/internal/env"
)

type Config struct {
	Port      string             `env:"PORT" envDefault:"8080"`
	Env       appenv.Environment `env:"ENV" envDefault:"development"`
	Database  Database
	Redis     Redis
	RateLimit RateLimit
	Auth      Auth
	CORS      CORS
	Metrics   Metrics
}

type Database struct {
	URL string `env:"DATABASE_URL,required,notEmpty"`
}

// Redis is optional. An empty URL selects the in-memory backend.
type Redis struct {
	URL string `env:"REDIS_URL"`
}

type RateLimit struct {
	Limit float64 `env:"RATE_LIMIT" envDefault:"10"`
	Burst int     `env:"RATE_BURST" envDefault:"20"`
}

type Auth struct {
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	ResetTTL   time.Duration `env:"RESET_TTL" envDefault:"30m"`
	ResetURL   string        `env:"RESET_URL" envDefault:"http://localhost:3000/reset-password"`
}

// CORS origins are a comma separated list; empty disables CORS headers.
type CORS struct {
	Origins string `env:"CORS_ORIGINS"`
}

type Metrics struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
