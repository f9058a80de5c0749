// Package config handles reading and writing intake.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/underground-music/intake/internal/catalog"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "intake.yaml"

// EnvPrefix prefixes environment overrides, e.g. INTAKE_MESSAGING_CONTACT.
const EnvPrefix = "INTAKE"

// Config is the top-level structure for intake.yaml.
type Config struct {
	School    SchoolConfig    `yaml:"school" mapstructure:"school"`
	Messaging MessagingConfig `yaml:"messaging" mapstructure:"messaging"`
	Flow      FlowConfig      `yaml:"flow" mapstructure:"flow"`
	Prices    PricesConfig    `yaml:"prices" mapstructure:"prices"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Telegram  TelegramConfig  `yaml:"telegram" mapstructure:"telegram"`
}

// SchoolConfig is the copy shown in the info panel and the greeting.
type SchoolConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Address     string `yaml:"address" mapstructure:"address"`
	Phone       string `yaml:"phone" mapstructure:"phone"`
	Days        string `yaml:"days" mapstructure:"days"`
	OfficeHours string `yaml:"office_hours" mapstructure:"office_hours"`
}

// MessagingConfig addresses the handoff link.
type MessagingConfig struct {
	Domain  string `yaml:"domain" mapstructure:"domain"`
	Contact string `yaml:"contact" mapstructure:"contact"` // digits only
}

// FlowConfig tunes the intake flow.
type FlowConfig struct {
	AutoAdvanceMs   int `yaml:"auto_advance_ms" mapstructure:"auto_advance_ms"`
	KidsAdvisoryAge int `yaml:"kids_advisory_age" mapstructure:"kids_advisory_age"`
}

// AutoAdvance returns the auto-advance delay.
func (f FlowConfig) AutoAdvance() time.Duration {
	return time.Duration(f.AutoAdvanceMs) * time.Millisecond
}

// PricesConfig holds monthly prices in ARS. Zero keeps the catalog price.
type PricesConfig struct {
	Group      int `yaml:"group" mapstructure:"group"`
	Individual int `yaml:"individual" mapstructure:"individual"`
	Kids       int `yaml:"kids" mapstructure:"kids"`
}

// LogConfig controls the event journal.
type LogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// TelegramConfig configures the chat front end.
type TelegramConfig struct {
	Token             string `yaml:"token" mapstructure:"token"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes" mapstructure:"session_ttl_minutes"`
}

// SessionTTL returns how long an idle chat keeps its answers.
func (t TelegramConfig) SessionTTL() time.Duration {
	return time.Duration(t.SessionTTLMinutes) * time.Minute
}

// Catalog returns the default class catalog with the configured prices.
func (c *Config) Catalog() *catalog.Catalog {
	return catalog.Default().WithPrices(map[catalog.ClassType]int{
		catalog.Group:      c.Prices.Group,
		catalog.Individual: c.Prices.Individual,
		catalog.Kids:       c.Prices.Kids,
	})
}

// DefaultConfig returns a Config populated with the school's defaults.
func DefaultConfig() *Config {
	return &Config{
		School: SchoolConfig{
			Name:        "Underground",
			Address:     "General Paz 274",
			Phone:       "+54 2657 65-9078",
			Days:        "Lunes a Viernes",
			OfficeHours: "18 a 21hs",
		},
		Messaging: MessagingConfig{
			Domain:  "wa.me",
			Contact: "5492657659078",
		},
		Flow: FlowConfig{
			AutoAdvanceMs:   300,
			KidsAdvisoryAge: 8,
		},
		Prices: PricesConfig{
			Group:      32000,
			Individual: 55000,
			Kids:       39000,
		},
		Log: LogConfig{
			Enabled: true,
			Dir:     ".intake",
		},
		Telegram: TelegramConfig{
			SessionTTLMinutes: 60,
		},
	}
}

// NewViper returns a viper instance with every key defaulted and
// environment overrides enabled. Callers may bind flags before LoadFrom.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("school.name", d.School.Name)
	v.SetDefault("school.address", d.School.Address)
	v.SetDefault("school.phone", d.School.Phone)
	v.SetDefault("school.days", d.School.Days)
	v.SetDefault("school.office_hours", d.School.OfficeHours)

	v.SetDefault("messaging.domain", d.Messaging.Domain)
	v.SetDefault("messaging.contact", d.Messaging.Contact)

	v.SetDefault("flow.auto_advance_ms", d.Flow.AutoAdvanceMs)
	v.SetDefault("flow.kids_advisory_age", d.Flow.KidsAdvisoryAge)

	v.SetDefault("prices.group", d.Prices.Group)
	v.SetDefault("prices.individual", d.Prices.Individual)
	v.SetDefault("prices.kids", d.Prices.Kids)

	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.dir", d.Log.Dir)

	v.SetDefault("telegram.token", d.Telegram.Token)
	v.SetDefault("telegram.session_ttl_minutes", d.Telegram.SessionTTLMinutes)
}

// Load reads path (optional; a missing file means defaults), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	return LoadFrom(NewViper(), path)
}

// LoadFrom is Load on a caller-prepared viper instance.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !missing(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

func missing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// WriteConfig writes cfg to path, creating parent directories.
func WriteConfig(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
