// Package config loads console settings from an optional .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for the console and the mock backend.
type Config struct {
	BackendURL      string        `mapstructure:"BACKEND_URL"`
	ListenAddr      string        `mapstructure:"LISTEN_ADDR"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	MessageTTL      time.Duration `mapstructure:"MESSAGE_TTL"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	MockBackendAddr string        `mapstructure:"MOCK_BACKEND_ADDR"`
}

var defaults = map[string]any{
	"BACKEND_URL":       "http://localhost:8080/api",
	"LISTEN_ADDR":       ":4200",
	"REQUEST_TIMEOUT":   "10s",
	"MESSAGE_TTL":       "4s",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"CORS_ORIGINS":      "*",
	"MOCK_BACKEND_ADDR": ":8080",
}

// LoadConfig reads the .env file in path, if there is one, and lets
// environment variables override it.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		viper.SetDefault(key, value)
		_ = viper.BindEnv(key)
	}

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err = viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	config.BackendURL = strings.TrimRight(strings.TrimSpace(config.BackendURL), "/")
	config.CORSOrigins = splitOrigins(config.CORSOrigins)
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate rejects settings the console cannot run with.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("BACKEND_URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MessageTTL <= 0 {
		return fmt.Errorf("MESSAGE_TTL must be positive, got %s", c.MessageTTL)
	}
	return nil
}

// splitOrigins flattens comma separated entries. The env value arrives as a
// single string while the .env file can yield either form.
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
