package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	GinMode    string `env:"GIN_MODE" envDefault:"debug"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"boarduser"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"boardpassword"`
	DBName     string `env:"DB_NAME" envDefault:"board_manager"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort string `env:"REDIS_PORT" envDefault:"6379"`

	SessionSecret string `env:"SESSION_SECRET" envDefault:"default-secret-key-change-me"`

	// AuthSecret signs board access tokens embedded in share links.
	AuthSecret string        `env:"AUTH_SECRET" envDefault:"dev-secret-key"`
	TokenTTL   time.Duration `env:"BOARD_TOKEN_TTL" envDefault:"24h"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
