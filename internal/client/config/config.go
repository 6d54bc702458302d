package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the client.
//
// RequestTimeout of zero means requests never time out; RequestsPerSecond of
// zero disables outbound throttling.
type Config struct {
	ServerBaseURL     string        `env:"VG_SERVER_URL"`
	DatabasePath      string        `env:"VG_DATABASE_PATH"`
	PageSize          int           `env:"VG_PAGE_SIZE"`
	RequestTimeout    time.Duration `env:"VG_REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"VG_REQUESTS_PER_SECOND"`
	LogLevel          string        `env:"VG_LOG_LEVEL"`
}

const DefaultPageSize = 10

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "session.db"
	c.PageSize = DefaultPageSize
	c.RequestTimeout = 0
	c.RequestsPerSecond = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment and
// the process flags, in that order. A .env file in the working directory, if
// present, is loaded into the environment first.
func LoadConfig() *Config {
	_ = godotenv.Load()
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return cfg
}
