package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddress string   `envconfig:"SERVER_ADDRESS" default:":8000"`
	PostgresConn  string   `envconfig:"POSTGRES_CONN" required:"true"`
	MigrationsDir string   `envconfig:"MIGRATIONS_DIR" default:"file://migrations"`
	RedisAddr     string   `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string   `envconfig:"REDIS_PASSWORD"`
	JWTSecret     string   `envconfig:"JWT_SECRET" required:"true"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment, after loading a local
// .env file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	return &cfg, nil
}
