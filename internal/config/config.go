package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the storefront backend and client.
// Values come from defaults, an optional config file, then environment variables.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Client   ClientConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	AdminAPIKeys []string // empty disables admin authentication
}

// ClientConfig configures the storefront session talking to the backend
type ClientConfig struct {
	BackendURL       string
	RequestTimeout   time.Duration
	APIKey           string
	ShippingFlatRate float64
	FreeShippingOver float64 // 0 means shipping is never free
}

// env bindings: config key -> environment variable
var envBindings = map[string]string{
	"server.port":             "PORT",
	"server.host":             "HOST",
	"server.read_timeout":     "READ_TIMEOUT",
	"server.write_timeout":    "WRITE_TIMEOUT",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	"auth.admin_api_keys":     "ADMIN_API_KEYS",
	"client.backend_url":      "BACKEND_URL",
	"client.request_timeout":  "REQUEST_TIMEOUT",
	"client.api_key":          "API_KEY",
	"client.shipping_flat":    "SHIPPING_FLAT_RATE",
	"client.free_shipping":    "FREE_SHIPPING_OVER",
	"log_level":               "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)
	v.SetDefault("auth.admin_api_keys", "")
	v.SetDefault("client.backend_url", "http://localhost:8000")
	v.SetDefault("client.request_timeout", "10s")
	v.SetDefault("client.api_key", "")
	v.SetDefault("client.shipping_flat", 10.0)
	v.SetDefault("client.free_shipping", 0.0)
	v.SetDefault("log_level", "info")
}

// Load reads configuration. configFile may be empty; when set it must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			Host:            v.GetString("server.host"),
			ReadTimeout:     v.GetInt("server.read_timeout"),
			WriteTimeout:    v.GetInt("server.write_timeout"),
			ShutdownTimeout: v.GetInt("server.shutdown_timeout"),
		},
		Auth: AuthConfig{
			AdminAPIKeys: stringList(v, "auth.admin_api_keys"),
		},
		Client: ClientConfig{
			BackendURL:       v.GetString("client.backend_url"),
			RequestTimeout:   v.GetDuration("client.request_timeout"),
			APIKey:           v.GetString("client.api_key"),
			ShippingFlatRate: v.GetFloat64("client.shipping_flat"),
			FreeShippingOver: v.GetFloat64("client.free_shipping"),
		},
		LogLevel: v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	u, err := url.Parse(c.Client.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL: %q", c.Client.BackendURL)
	}

	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.Client.ShippingFlatRate < 0 || c.Client.FreeShippingOver < 0 {
		return fmt.Errorf("shipping amounts cannot be negative")
	}

	return nil
}

// stringList reads a key given either as a comma separated string (env) or as a list (config file)
func stringList(v *viper.Viper, key string) []string {
	if _, ok := v.Get(key).(string); ok {
		return splitList(v.GetString(key))
	}
	return splitList(strings.Join(v.GetStringSlice(key), ","))
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
