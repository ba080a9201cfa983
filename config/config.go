// Package config loads configuration for both lab services from an optional
// YAML file, SIEMLAB_-prefixed environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration tree shared by both binaries.
type Config struct {
	Webapp  WebappConfig  `mapstructure:"webapp"`
	Webhook WebhookConfig `mapstructure:"webhook"`
	SIEM    SIEMConfig    `mapstructure:"siem"`
	Log     LogConfig     `mapstructure:"log"`
}

// WebappConfig configures the credential service.
type WebappConfig struct {
	ListenAddr      string            `mapstructure:"listen_addr"`
	TemplateGlob    string            `mapstructure:"template_glob"`
	Users           map[string]string `mapstructure:"users"`
	AttemptCapacity int               `mapstructure:"attempt_capacity"`
}

// WebhookConfig configures the command relay service.
type WebhookConfig struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	ScriptPath     string        `mapstructure:"script_path"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Secret         string        `mapstructure:"secret"`
	DBPath         string        `mapstructure:"db_path"`
	AuditRetention time.Duration `mapstructure:"audit_retention"`
}

// SIEMConfig configures the event collector client.
type SIEMConfig struct {
	CollectorURL string        `mapstructure:"collector_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LogConfig configures zap output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultUsers is the fixed demo credential table. Plaintext on purpose:
// the webapp is a brute-force target, not a real login system.
func DefaultUsers() map[string]string {
	return map[string]string{
		"admin": "admin123",
		"user":  "password123",
		"test":  "test123",
		"demo":  "demo123",
		"guest": "guest123",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webapp.listen_addr", ":8080")
	v.SetDefault("webapp.template_glob", "templates/*")
	v.SetDefault("webapp.users", DefaultUsers())
	v.SetDefault("webapp.attempt_capacity", 10000)

	v.SetDefault("webhook.listen_addr", ":8081")
	v.SetDefault("webhook.script_path", "/app/nginx/ip_blocker.sh")
	v.SetDefault("webhook.command_timeout", 30*time.Second)
	v.SetDefault("webhook.secret", "your-secret-key-here")
	v.SetDefault("webhook.db_path", "./siem-lab.db")
	v.SetDefault("webhook.audit_retention", 7*24*time.Hour)

	v.SetDefault("siem.collector_url", "http://logstash:5044")
	v.SetDefault("siem.timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
}

// Load reads configPath if non-empty (a missing file falls back to defaults),
// applies env overrides, and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SIEMLAB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			// A missing file means defaults + env; anything else is fatal.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields both binaries depend on at startup.
func (c *Config) Validate() error {
	var errs []string
	if c.Webapp.ListenAddr == "" {
		errs = append(errs, "webapp.listen_addr must not be empty")
	}
	if len(c.Webapp.Users) == 0 {
		errs = append(errs, "webapp.users must contain at least one account")
	}
	if c.Webapp.AttemptCapacity <= 0 {
		errs = append(errs, "webapp.attempt_capacity must be positive")
	}
	if c.Webhook.ListenAddr == "" {
		errs = append(errs, "webhook.listen_addr must not be empty")
	}
	if c.Webhook.ScriptPath == "" {
		errs = append(errs, "webhook.script_path must not be empty")
	}
	if c.Webhook.CommandTimeout <= 0 {
		errs = append(errs, "webhook.command_timeout must be positive")
	}
	if c.SIEM.CollectorURL == "" {
		errs = append(errs, "siem.collector_url must not be empty")
	}
	if c.SIEM.Timeout <= 0 {
		errs = append(errs, "siem.timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
