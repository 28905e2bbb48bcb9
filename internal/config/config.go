// Package config loads textify settings from defaults, an optional
// textify.yaml and TEXTIFY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"textify/internal/revision"
)

// ErrValidation wraps every validation failure returned by Load.
var ErrValidation = errors.New("invalid configuration")

const (
	EnvPrefix  = "TEXTIFY"
	configName = "textify"
)

// Backends accepted by cleaner.backend.
const (
	BackendGemini = "gemini"
	BackendHTTP   = "http"
	BackendLocal  = "local"
)

var defaults = map[string]any{
	"log.level":  "info",
	"log.format": "text",
	"log.file":   filepath.Join(".textify", "textify.log"),

	"cleaner.backend":     BackendLocal,
	"cleaner.model":       "gemini-2.0-flash",
	"cleaner.api_key":     "",
	"cleaner.endpoint":    "",
	"cleaner.timeout":     60 * time.Second,
	"cleaner.temperature": 0.2,

	"autoclean.enabled": true,
	"autoclean.delay":   revision.DefaultAutoCleanDelay,

	"defaults.remove_emojis":            false,
	"defaults.normalize_quotes":         false,
	"defaults.trim_trailing_spaces":     false,
	"defaults.convert_to_lowercase":     false,
	"defaults.convert_to_sentence_case": false,
	"defaults.remove_urls":              false,
	"defaults.remove_line_numbers":      false,
	"defaults.regex.enabled":            false,
	"defaults.regex.pattern":            "",
	"defaults.regex.replacement":        "",
	"defaults.regex.case_sensitive":     false,

	"ui.no_color":   false,
	"ui.view":       "split",
	"ui.alt_screen": true,

	"export.dir": ".",

	"share.base_url": "https://textify.app/",
}

type Config struct {
	Log       LogConfig               `mapstructure:"log"`
	Cleaner   CleanerConfig           `mapstructure:"cleaner"`
	AutoClean AutoCleanConfig         `mapstructure:"autoclean"`
	Defaults  revision.CleaningConfig `mapstructure:"defaults"`
	UI        UIConfig                `mapstructure:"ui"`
	Export    ExportConfig            `mapstructure:"export"`
	Share     ShareConfig             `mapstructure:"share"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	File   string `mapstructure:"file"`
}

type CleanerConfig struct {
	Backend     string        `mapstructure:"backend"     validate:"required,oneof=gemini http local"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"     validate:"required_if=Backend gemini"`
	Endpoint    string        `mapstructure:"endpoint"    validate:"required_if=Backend http"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
}

type AutoCleanConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Delay   time.Duration `mapstructure:"delay" validate:"min=50ms,max=1m"`
}

type UIConfig struct {
	NoColor   bool   `mapstructure:"no_color"`
	View      string `mapstructure:"view" validate:"oneof=split unified"`
	AltScreen bool   `mapstructure:"alt_screen"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type ShareConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// Load reads configuration in this order, later sources winning:
//  1. built-in defaults
//  2. the file at path, or textify.{yaml,yml,json,toml} in . or ~/.config/textify
//  3. TEXTIFY_* environment variables (GEMINI_API_KEY for the API key)
//
// A missing default file is fine; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("cleaner.api_key", EnvPrefix+"_CLEANER_API_KEY", "GEMINI_API_KEY")
	return v
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Dir is ~/.config/textify.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", configName), nil
}

// SavePath is where SaveDefaults writes when no file was loaded.
func (c *Config) SavePath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+".yaml"), nil
}

// SaveDefaults stores d as the startup toggles in the YAML file at path,
// keeping every other key already in that file.
func SaveDefaults(path string, d revision.CleaningConfig) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}
	v.Set("defaults.remove_emojis", d.RemoveEmojis)
	v.Set("defaults.normalize_quotes", d.NormalizeQuotes)
	v.Set("defaults.trim_trailing_spaces", d.TrimTrailingSpaces)
	v.Set("defaults.convert_to_lowercase", d.ConvertToLowercase)
	v.Set("defaults.convert_to_sentence_case", d.ConvertToSentenceCase)
	v.Set("defaults.remove_urls", d.RemoveURLs)
	v.Set("defaults.remove_line_numbers", d.RemoveLineNumbers)
	v.Set("defaults.regex.enabled", d.Regex.Enabled)
	v.Set("defaults.regex.pattern", d.Regex.Pattern)
	v.Set("defaults.regex.replacement", d.Regex.Replacement)
	v.Set("defaults.regex.case_sensitive", d.Regex.CaseSensitive)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
