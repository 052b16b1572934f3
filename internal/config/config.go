package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken       string        `envconfig:"BOT_TOKEN" required:"true"`
	OWMAPIKey      string        `envconfig:"OWM_API_KEY" required:"true"`
	DBPath         string        `envconfig:"DB_PATH" default:":memory:"` // profiles live for the process lifetime by default
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz + metrics
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	WeatherTimeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
