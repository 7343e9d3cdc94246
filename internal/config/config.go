package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"livequiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	Game     Game
}

// Postgres captures connection info for the quiz definition store.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds quiz cache configuration.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR,notEmpty"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	QuizTTL  time.Duration `env:"REDIS_QUIZ_TTL" envDefault:"5m"`
}

// Security stores the signing secret for operator and player tokens.
type Security struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty"`
}

// Game groups gameplay defaults for live sessions.
type Game struct {
	MinBonusFraction       float64       `env:"SCORE_MIN_BONUS_FRACTION" envDefault:"0.5"`
	DefaultQuestionSeconds int           `env:"DEFAULT_QUESTION_SECONDS" envDefault:"30"`
	SessionIdleTTL         time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
	SessionSweepInterval   time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
