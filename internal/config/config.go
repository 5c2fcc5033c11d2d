package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quiz-progress-service/internal/domain"
	"quiz-progress-service/internal/share"
)

// Store engines accepted in store.engine.
const (
	EngineMemory   = "memory"
	EngineSQLite   = "sqlite"
	EngineRedis    = "redis"
	EnginePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Store struct {
		Engine string `yaml:"engine"`
		Path   string `yaml:"path"`
	} `yaml:"store"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Locale struct {
		Default           string            `yaml:"default"`
		NumberLocales     map[string]string `yaml:"numberLocales"`
		RightToLeftScript []string          `yaml:"rightToLeftScripts"`
		MessagesPath      string            `yaml:"messagesPath"`
	} `yaml:"locale"`
	Share struct {
		BaseURL   string   `yaml:"baseUrl"`
		TargetURL string   `yaml:"targetUrl"`
		Template  string   `yaml:"template"`
		Hashtags  []string `yaml:"hashtags"`
	} `yaml:"share"`
	Community domain.CommunityStats `yaml:"community"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Store.Engine = EngineSQLite
	cfg.Store.Path = "progress.db"
	cfg.Locale.Default = "en"
	cfg.Share.BaseURL = share.DefaultBaseURL
	cfg.Share.TargetURL = share.DefaultTargetURL
	cfg.Share.Template = share.DefaultTemplate
	cfg.Share.Hashtags = append([]string(nil), share.DefaultHashtags...)
	cfg.Community = domain.DefaultCommunityStats()
	return cfg
}

// Load reads YAML config from path over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Engine) {
	case EngineMemory, EngineSQLite:
	case EngineRedis:
		if c.Redis.Addr == "" {
			return &domain.ConfigurationError{Reason: "store engine redis requires redis.addr"}
		}
	case EnginePostgres:
		if c.Postgres.URL == "" {
			return &domain.ConfigurationError{Reason: "store engine postgres requires postgres.url"}
		}
	default:
		return &domain.ConfigurationError{Reason: fmt.Sprintf("unsupported store engine %q", c.Store.Engine)}
	}
	if c.Community.AverageScore < 0 || c.Community.AverageScore > 1 || c.Community.RetryRate < 0 || c.Community.RetryRate > 1 {
		return &domain.ConfigurationError{Reason: "community averageScore and retryRate must be fractions in [0,1]"}
	}
	if len(c.Share.Hashtags) == 0 {
		return &domain.ConfigurationError{Reason: "share.hashtags must not be empty"}
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
