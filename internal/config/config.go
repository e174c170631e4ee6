// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	DataDir         string `mapstructure:"data_dir"`
	PostgresURL     string `mapstructure:"postgres_url"`
	LogFile         string `mapstructure:"log_file"`
	DebugLogging    bool   `mapstructure:"debug_logging"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"`
	EventBufferSize int    `mapstructure:"event_buffer_size"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

const (
	DefaultListenAddr      = ":8080"
	DefaultDataDir         = "data"
	DefaultLogFile         = "curved.log"
	DefaultEventBufferSize = 100
	DefaultShutdownTimeout = 10
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"listen_addr":       DefaultListenAddr,
		"data_dir":          DefaultDataDir,
		"log_file":          DefaultLogFile,
		"metrics_enabled":   true,
		"event_buffer_size": DefaultEventBufferSize,
		"shutdown_timeout":  DefaultShutdownTimeout,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return errors.New("missing listen_addr in configuration")
	}
	if cfg.DataDir == "" {
		return errors.New("missing data_dir in configuration")
	}
	if cfg.PostgresURL != "" {
		if err := validatePostgresURL(cfg.PostgresURL); err != nil {
			return err
		}
	}
	if cfg.EventBufferSize <= 0 {
		return errors.New("invalid event_buffer_size")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("invalid shutdown_timeout")
	}
	return nil
}

func validatePostgresURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid postgres_url format")
	}
	if !strings.HasPrefix(parsed.Scheme, "postgres") {
		return errors.New("postgres_url must use the postgres scheme")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("CURVE_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if addr := v.GetString("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dir := v.GetString("DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if pg := v.GetString("POSTGRES_URL"); pg != "" {
		cfg.PostgresURL = pg
	}
	if lf := v.GetString("LOG_FILE"); lf != "" {
		cfg.LogFile = lf
	}
	if v.IsSet("DEBUG_LOGGING") {
		cfg.DebugLogging = v.GetBool("DEBUG_LOGGING")
	}
}
