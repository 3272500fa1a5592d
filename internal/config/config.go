package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr" envconfig:"HTTP_ADDR"`
		Latency      time.Duration `yaml:"latency" envconfig:"ANALYZE_LATENCY"`
		RatePerSec   float64       `yaml:"rate_per_sec" envconfig:"ANALYZE_RATE"`
		Burst        int           `yaml:"burst" envconfig:"ANALYZE_BURST"`
		ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"HTTP_READ_TIMEOUT"`
		WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT"`
		ToastHistory int           `yaml:"toast_history" envconfig:"TOAST_HISTORY"`
	} `yaml:"server"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
		RetentionDays int    `yaml:"retention_days" envconfig:"RETENTION_DAYS"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
		Proxy    string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
	} `yaml:"telegram"`
	Schedule struct {
		DigestCron    string `yaml:"digest_cron" envconfig:"CRON_DIGEST"`
		RetentionCron string `yaml:"retention_cron" envconfig:"CRON_RETENTION"`
	} `yaml:"schedule"`
	Content struct {
		Path string `yaml:"path" envconfig:"CONTENT_PATH"`
	} `yaml:"content"`
	Logging struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Pretty bool   `yaml:"pretty" envconfig:"LOG_PRETTY"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file over the defaults, then applies .env
// and environment variable overrides. Keys that are present keep their
// value, so an explicit 0 (e.g. server.latency) survives.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	// Unset variables leave the YAML values in place.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.fillEmpty()
	return cfg, nil
}

func defaults() *Config {
	c := &Config{}
	c.Server.Addr = ":8080"
	c.Server.Latency = 1500 * time.Millisecond
	c.Server.RatePerSec = 5
	c.Server.Burst = 10
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	c.Server.ToastHistory = 20
	c.Database.RetentionDays = 30
	c.Schedule.DigestCron = "0 0 8 * * 1-5"
	c.Schedule.RetentionCron = "0 30 3 * * *"
	c.Logging.Level = "info"
	return c
}

// fillEmpty restores defaults for strings blanked out by the file or env.
func (c *Config) fillEmpty() {
	d := defaults()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = d.Schedule.DigestCron
	}
	if c.Schedule.RetentionCron == "" {
		c.Schedule.RetentionCron = d.Schedule.RetentionCron
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// TelegramEnabled reports whether both bot token and chat id are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Server.Latency < 0 {
		return fmt.Errorf("server.latency must not be negative")
	}
	if c.Server.RatePerSec <= 0 {
		return fmt.Errorf("server.rate_per_sec must be positive")
	}
	if c.Server.Burst <= 0 {
		return fmt.Errorf("server.burst must be positive")
	}
	if c.Server.ToastHistory < 0 {
		return fmt.Errorf("server.toast_history must not be negative")
	}
	if c.Database.RetentionDays < 0 {
		return fmt.Errorf("database.retention_days must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
