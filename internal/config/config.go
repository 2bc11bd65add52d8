package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines client and server configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Identity  IdentityConfig  `yaml:"identity"`
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Cache     CacheConfig     `yaml:"cache"`
	NATS      NATSConfig      `yaml:"nats"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// IdentityConfig is the caller identity sent in the X-User header before a login.
type IdentityConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Role    string `yaml:"role"`
	Team    string `yaml:"team"`
	Passkey string `yaml:"passkey"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
}

type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional .env file, an optional YAML file and
// environment variables, in that order of precedence (last wins).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Cache: CacheConfig{
			Path: "clubboard.db",
		},
		NATS: NATSConfig{
			SubjectPrefix: "clubboard.store",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CLUBBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if baseURL := os.Getenv("CLUBBOARD_API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if raw := os.Getenv("CLUBBOARD_API_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid CLUBBOARD_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if host := os.Getenv("CLUBBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CLUBBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid CLUBBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("CLUBBOARD_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if raw := os.Getenv("CLUBBOARD_AUTH_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid CLUBBOARD_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if token := os.Getenv("CLUBBOARD_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if path, ok := os.LookupEnv("CLUBBOARD_CACHE_PATH"); ok {
		cfg.Cache.Path = path
	}
	if url := os.Getenv("CLUBBOARD_NATS_URL"); url != "" {
		cfg.NATS.URL = url
	}
	if raw := os.Getenv("CLUBBOARD_METRICS_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid CLUBBOARD_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	if level := os.Getenv("CLUBBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if name := os.Getenv("CLUBBOARD_IDENTITY_NAME"); name != "" {
		cfg.Identity.Name = name
	}
	if role := os.Getenv("CLUBBOARD_IDENTITY_ROLE"); role != "" {
		cfg.Identity.Role = role
	}
	if team := os.Getenv("CLUBBOARD_IDENTITY_TEAM"); team != "" {
		cfg.Identity.Team = team
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
