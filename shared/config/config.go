package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Durations are plain seconds in the yaml; accessor methods below convert.
type Public struct {
	HTTP                  HTTP     `yaml:"http"`
	Pg                    Pg       `yaml:"pg"`
	PollIntervalSeconds   int      `yaml:"poll_interval_seconds"`   // cadence of feed refresh from the remote store
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"` // upper bound on a single remote call
	DataDir               string   `yaml:"data_dir"`                // pebble database holding theme + identity keys
	LogLevel              string   `yaml:"log_level"`
	LogJSON               bool     `yaml:"log_json"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

type HTTP struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	PgPassword string `yaml:"pg_password"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	// private.yaml is optional; secrets can come from the environment instead
	var private Private
	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		mustLoadPath(privatePath, &private)
	}

	cfg := &Config{public, private}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.PollIntervalSeconds <= 0 {
		c.Public.PollIntervalSeconds = 5
	}
	if c.Public.RequestTimeoutSeconds <= 0 {
		c.Public.RequestTimeoutSeconds = 10
	}
	if c.Public.HTTP.Addr == "" {
		c.Public.HTTP.Addr = ":8080"
	}
	if c.Public.DataDir == "" {
		c.Public.DataDir = "data"
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}

// applyEnvOverrides lets deployment-specific values come from the environment
// (populated via godotenv in main) on top of the yaml files.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.PgPassword = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Public.DataDir = v
	}
}

// PgPassword resolves the effective database password.
func (c *Config) PgPassword() string {
	if c.Private.PgPassword != "" {
		return c.Private.PgPassword
	}
	return c.Public.Pg.Password
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Public.PollIntervalSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Public.RequestTimeoutSeconds) * time.Second
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Public.HTTP.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Public.HTTP.WriteTimeoutSeconds) * time.Second
}
