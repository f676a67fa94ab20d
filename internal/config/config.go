package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// TailscaleConfig controls the optional tsnet listener. When enabled the
// server joins the tailnet under Hostname instead of binding a local port.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix TRAINCOACH_ and underscore-separated
// paths:
//
//	TRAINCOACH_SERVER_HOST, TRAINCOACH_SERVER_PORT,
//	TRAINCOACH_DB_HOST, TRAINCOACH_DB_PORT, TRAINCOACH_DB_NAME,
//	TRAINCOACH_DB_USER, TRAINCOACH_DB_PASSWORD, TRAINCOACH_DB_SSLMODE,
//	TRAINCOACH_AUTH_API_KEY,
//	TRAINCOACH_TS_ENABLED, TRAINCOACH_TS_HOSTNAME, TRAINCOACH_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRAINCOACH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TRAINCOACH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TRAINCOACH_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("TRAINCOACH_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("TRAINCOACH_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("TRAINCOACH_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("TRAINCOACH_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("TRAINCOACH_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("TRAINCOACH_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("TRAINCOACH_TS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("TRAINCOACH_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("TRAINCOACH_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Tailscale.Enabled {
		if c.Tailscale.Hostname == "" {
			return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
		}
	} else if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
