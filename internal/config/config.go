package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is searched for in the working directory and its parents
	ConfigFileName = "salon.yaml"
	// EnvPrefix prefixes every environment override, e.g. SALON_API_URL
	EnvPrefix = "SALON"
)

// Output formats accepted by --output
var OutputFormats = []string{"table", "json", "yaml"}

// Config holds all configuration for the CLI
type Config struct {
	// APIURL is the base URL of the salon REST API
	APIURL string

	// Timeout bounds every HTTP request
	Timeout time.Duration

	// Output is one of OutputFormats
	Output string

	// Logging Configuration
	Logging LoggingConfig

	// File is the config file that was read, empty when none was found
	File string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"api-url":    "api_url",
	"timeout":    "timeout",
	"output":     "output",
	"log-level":  "log_level",
	"log-format": "log_format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("output", "table")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
}

// Load resolves the configuration from, in order of precedence, changed
// flags, SALON_* environment variables, salon.yaml and built-in defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	path, err := FindConfigFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{
		APIURL:  strings.TrimRight(v.GetString("api_url"), "/"),
		Timeout: v.GetDuration("timeout"),
		Output:  strings.ToLower(v.GetString("output")),
		Logging: LoggingConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		File: path,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later in obscure ways
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url '%s': must be an http(s) URL", c.APIURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout '%s': must be positive", c.Timeout)
	}

	for _, f := range OutputFormats {
		if c.Output == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format '%s', must be one of: %s", c.Output, strings.Join(OutputFormats, ", "))
}

// FindConfigFile searches the current directory and its parents for
// salon.yaml, then falls back to ~/.config/salon/salon.yaml. It returns an
// error wrapping os.ErrNotExist when no file exists.
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(home, ".config", "salon", ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory: %w", ConfigFileName, currentDir, os.ErrNotExist)
}

// FakeAPIConfig configures the local stand-in API started by cmd/fakeapi
type FakeAPIConfig struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	Logging       LoggingConfig
}

// LoadFakeAPI reads FAKEAPI_* environment variables
func LoadFakeAPI() (*FakeAPIConfig, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v := viper.New()
	v.SetEnvPrefix("FAKEAPI")
	v.AutomaticEnv()

	v.SetDefault("addr", ":5000")
	v.SetDefault("database_url", ":memory:")
	v.SetDefault("jwt_secret", "fakeapi-secret")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("admin_email", "admin@salon.local")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	cfg := &FakeAPIConfig{
		Addr:          v.GetString("addr"),
		DatabaseURL:   v.GetString("database_url"),
		JWTSecret:     v.GetString("jwt_secret"),
		TokenTTL:      v.GetDuration("token_ttl"),
		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),
		Logging: LoggingConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}

	if cfg.TokenTTL < 0 {
		return nil, fmt.Errorf("invalid token_ttl '%s'", cfg.TokenTTL)
	}

	return cfg, nil
}
