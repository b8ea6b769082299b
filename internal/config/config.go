package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything cmd/catalog needs to start.
type Config struct {
	Port     int
	LogLevel string

	MetricsEnabled bool
	MetricsToken   string

	CORSAllowedOrigins []string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from the environment and an optional config.yaml.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:               v.GetInt("port"),
		LogLevel:           v.GetString("log_level"),
		MetricsEnabled:     v.GetBool("metrics_enabled"),
		MetricsToken:       v.GetString("metrics_token"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		ReadHeaderTimeout:  v.GetDuration("read_header_timeout"),
		ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_token", "")
	v.SetDefault("cors_allowed_origins", "")
	v.SetDefault("read_header_timeout", 5*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.MetricsEnabled && cfg.MetricsToken == "" {
		return errors.New("metrics_token is required when metrics_enabled is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
