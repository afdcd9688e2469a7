// Package config loads application configuration.
// Values come from a TOML file (first hit among several search paths), then a .env
// file and the process environment override the secrets and the listen port.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// MainConfig holds the basic application settings.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"` // dev | release
}

// DatabaseConfig describes the relational store. Driver is mysql, postgres or sqlite.
// When DSN is set it is used verbatim.
type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	DSN          string `toml:"dsn"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	MaxOpenConns int    `toml:"maxOpenConns"`
	MaxIdleConns int    `toml:"maxIdleConns"`
}

// RedisConfig controls the read-through cache.
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	Db           int    `toml:"db"`
	WorkerNum    int    `toml:"workerNum"`
	TaskChanSize int    `toml:"taskChanSize"`
}

// LogConfig controls zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // MB
	MaxBackups int    `toml:"maxBackups"` // files
	MaxAge     int    `toml:"maxAge"`     // days
	Level      string `toml:"level"`
}

// KafkaConfig selects how domain events are published.
type KafkaConfig struct {
	MessageMode string `toml:"messageMode"` // "channel" or "kafka"
	HostPort    string `toml:"hostPort"`
	EventTopic  string `toml:"eventTopic"`
	Partition   int    `toml:"partition"`
	Timeout     int    `toml:"timeout"` // seconds
}

// AIConfig configures the text-completion provider used for journal replies.
type AIConfig struct {
	Provider    string  `toml:"provider"` // openai | googleai
	APIKey      string  `toml:"apiKey"`
	BaseURL     string  `toml:"baseURL"`
	Model       string  `toml:"model"`
	Timeout     int     `toml:"timeout"` // seconds
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"maxTokens"`
}

// RateLimitConfig bounds the journal endpoint per client IP.
type RateLimitConfig struct {
	JournalRPS   float64 `toml:"journalRPS"`
	JournalBurst int     `toml:"journalBurst"`
}

// SecurityConfig controls CORS and response hardening.
type SecurityConfig struct {
	AllowOrigins []string `toml:"allowOrigins"`
	SSLRedirect  bool     `toml:"sslRedirect"`
	SSLHost      string   `toml:"sslHost"`
}

// TraceConfig configures OpenTelemetry export. Exporter is stdout or otlp.
type TraceConfig struct {
	Enabled  bool   `toml:"enabled"`
	Exporter string `toml:"exporter"`
	Endpoint string `toml:"endpoint"`
}

// BookingConfig holds booking lifecycle rules.
type BookingConfig struct {
	StrictTransitions bool `toml:"strictTransitions"`
}

// Config aggregates every section.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	DatabaseConfig  `toml:"databaseConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	AIConfig        `toml:"aiConfig"`
	RateLimitConfig `toml:"rateLimitConfig"`
	SecurityConfig  `toml:"securityConfig"`
	TraceConfig     `toml:"traceConfig"`
	BookingConfig   `toml:"bookingConfig"`
}

// envOverrides lists the process-level settings that win over the file.
type envOverrides struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	DBDriver      string `env:"DB_DRIVER"`
	AIAPIKey      string `env:"AI_API_KEY"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	Port          int    `env:"PORT"`
	Mode          string `env:"APP_MODE"`
}

// DefaultPaths are searched in order; local overrides come first.
var DefaultPaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// Default returns a configuration usable without any file.
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{AppName: "mindful_server", Host: "0.0.0.0", Port: 5010, Mode: "dev"},
		DatabaseConfig: DatabaseConfig{
			Driver: "mysql", Host: "127.0.0.1", Port: 3306, User: "root", DatabaseName: "mindful_app",
			MaxOpenConns: 50, MaxIdleConns: 10,
		},
		RedisConfig:     RedisConfig{Host: "127.0.0.1", Port: 6379, WorkerNum: 8, TaskChanSize: 1024},
		LogConfig:       LogConfig{LogPath: "logs", MaxSize: 100, MaxBackups: 5, MaxAge: 30, Level: "info"},
		KafkaConfig:     KafkaConfig{MessageMode: "channel", HostPort: "127.0.0.1:9092", EventTopic: "mindful.events", Partition: 1, Timeout: 5},
		AIConfig:        AIConfig{Provider: "googleai", Model: "gemini-1.5-flash", Timeout: 30, Temperature: 0.7, MaxTokens: 256},
		RateLimitConfig: RateLimitConfig{JournalRPS: 1, JournalBurst: 5},
		SecurityConfig:  SecurityConfig{AllowOrigins: []string{"*"}},
		TraceConfig:     TraceConfig{Exporter: "stdout"},
		BookingConfig:   BookingConfig{StrictTransitions: true},
	}
}

// Load reads the first available file from paths on top of Default, then applies
// the .env file and environment overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	cfg := Default()
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
		break
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("decode environment: %w", err)
	}
	if env.DatabaseURL != "" {
		c.DatabaseConfig.DSN = env.DatabaseURL
	}
	if env.DBDriver != "" {
		c.DatabaseConfig.Driver = env.DBDriver
	}
	if env.AIAPIKey != "" {
		c.AIConfig.APIKey = env.AIAPIKey
	}
	if env.RedisPassword != "" {
		c.RedisConfig.Password = env.RedisPassword
	}
	if env.Port != 0 {
		c.MainConfig.Port = env.Port
	}
	if env.Mode != "" {
		c.MainConfig.Mode = env.Mode
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}
