package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port int `env:"PORT" envDefault:"8080"`
	}

	Database struct {
		Path string `env:"SQLITE_PATH" envDefault:"twa_games.db"`
	}

	Telegram struct {
		BotToken string  `env:"BOT_TOKEN,required"`
		AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

		// URL of the authoring web app opened from the main menu button.
		WebAppURL string `env:"WEB_APP_URL" envDefault:""`

		// Long-poll timeout for getUpdates, seconds.
		PollTimeout int `env:"POLL_TIMEOUT" envDefault:"30"`
	}

	Session struct {
		// memory (default) or redis
		Backend string        `env:"SESSION_BACKEND" envDefault:"memory"`
		TTL     time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}
}

func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
