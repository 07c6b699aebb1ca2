package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendNative = "native"
	BackendWeb    = "web"
)

// Config holds application configuration.
type Config struct {
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Web     WebConfig     `mapstructure:"web" yaml:"web"`
	Host    HostConfig    `mapstructure:"host" yaml:"host"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// UIConfig selects the backend and sizes the bridge channels.
type UIConfig struct {
	Backend        string        `mapstructure:"backend" yaml:"backend"`
	Title          string        `mapstructure:"title" yaml:"title"`
	QueueSize      int           `mapstructure:"queue_size" yaml:"queue_size"`
	TickInterval   time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	DefaultPort    int           `mapstructure:"default_port" yaml:"default_port"`
	DefaultTimeout int           `mapstructure:"default_timeout" yaml:"default_timeout"`
}

// WebConfig configures the script-hosted backend.
type WebConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	Announce       bool          `mapstructure:"announce" yaml:"announce"`
	ReconnectGrace time.Duration `mapstructure:"reconnect_grace" yaml:"reconnect_grace"`
	LogoPath       string        `mapstructure:"logo_path" yaml:"logo_path"`
}

// HostConfig tunes the application loop that consumes the bridge.
type HostConfig struct {
	PollInterval    time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval" yaml:"metrics_interval"`
	Aircraft        []string      `mapstructure:"aircraft" yaml:"aircraft"`
}

// LoggingConfig controls the rotating log file.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// New returns a viper instance carrying every default. Callers may bind flags to it
// before passing it to Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("ui.backend", BackendNative)
	v.SetDefault("ui.title", "YourControls")
	v.SetDefault("ui.queue_size", 1024)
	v.SetDefault("ui.tick_interval", 50*time.Millisecond)
	v.SetDefault("ui.default_port", 7777)
	v.SetDefault("ui.default_timeout", 30)

	v.SetDefault("web.addr", "127.0.0.1:7780")
	v.SetDefault("web.announce", false)
	v.SetDefault("web.reconnect_grace", 3*time.Second)
	v.SetDefault("web.logo_path", "")

	v.SetDefault("host.poll_interval", 10*time.Millisecond)
	v.SetDefault("host.metrics_interval", time.Second)
	v.SetDefault("host.aircraft", []string{"A320neo", "B737-800", "C172 Skyhawk", "DA40NG", "TBM 930"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "debug.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 7)
	v.SetDefault("logging.compress", false)

	v.SetEnvPrefix("YOURCONTROLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from file and env into v. An explicit path must exist;
// without one, config.yaml in the user config directory is read if present.
// Env var overrides use prefix YOURCONTROLS_.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv("YOURCONTROLS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "yourcontrols"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration built from defaults and environment only.
func Default() Config {
	var c Config
	_ = New().Unmarshal(&c)
	return c
}

// Validate rejects values the bridge cannot run with.
func Validate(c Config) error {
	switch c.UI.Backend {
	case BackendNative, BackendWeb:
	default:
		return fmt.Errorf("invalid ui.backend: %q (want %q or %q)", c.UI.Backend, BackendNative, BackendWeb)
	}
	if c.UI.QueueSize <= 0 {
		return fmt.Errorf("invalid ui.queue_size: %d", c.UI.QueueSize)
	}
	if c.UI.TickInterval <= 0 {
		return fmt.Errorf("invalid ui.tick_interval: %s", c.UI.TickInterval)
	}
	if c.UI.DefaultPort <= 0 || c.UI.DefaultPort > 65535 {
		return fmt.Errorf("invalid ui.default_port: %d", c.UI.DefaultPort)
	}
	if c.UI.Backend == BackendWeb && c.Web.Addr == "" {
		return errors.New("web.addr is required when ui.backend=web")
	}
	if c.Web.ReconnectGrace < 0 {
		return fmt.Errorf("invalid web.reconnect_grace: %s", c.Web.ReconnectGrace)
	}
	if c.Host.PollInterval <= 0 {
		return fmt.Errorf("invalid host.poll_interval: %s", c.Host.PollInterval)
	}
	if c.Host.MetricsInterval <= 0 {
		return fmt.Errorf("invalid host.metrics_interval: %s", c.Host.MetricsInterval)
	}
	return nil
}
