package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ServiceName    = ""
	ServiceVersion = ""
)

var (
	Env *EnvConfig
)

type EnvConfig struct {
	Env      string                    `mapstructure:"env"`
	Log      LogConfig                 `mapstructure:"log"`
	Kite     KiteConfig                `mapstructure:"kite"`
	Orders   OrdersConfig              `mapstructure:"orders"`
	Database map[string]DatabaseConfig `mapstructure:"database"`
}

type LogConfig struct {
	ShowCaller bool   `mapstructure:"show_caller"`
	LogLevel   string `mapstructure:"log_level"`
}

type KiteConfig struct {
	UserID   string        `mapstructure:"user_id"`
	Password string        `mapstructure:"password"`
	TOTPKey  string        `mapstructure:"totp_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type OrdersConfig struct {
	FilePath string `mapstructure:"file_path"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	ReconnectFactor float64       `mapstructure:"reconnect_factor"`
	MinJitter       time.Duration `mapstructure:"min_jitter"`
	MaxJitter       time.Duration `mapstructure:"max_jitter"`
	MaxRetry        int           `mapstructure:"max_retry"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxActiveConns  int           `mapstructure:"max_active_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// LoadConfig reads config.yml when present and layers Kite credentials from the
// environment on top. The file is optional: everything the menu needs can come
// from KITE_USERNAME / KITE_PASSWORD / KITE_TOTP_KEY alone. Missing credentials
// are not validated here; they surface as a login failure.
func LoadConfig(configPath string) error {
	viper.Reset()

	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	} else {
		ext := strings.ToLower(filepath.Ext(configPath))
		if ext == ".yml" || ext == ".yaml" {
			viper.SetConfigFile(configPath)
		} else {
			viper.SetConfigName(filepath.Base(configPath))
			viper.SetConfigType("yml")
			configDir := filepath.Dir(configPath)
			if configDir == "." || configDir == "" {
				viper.AddConfigPath(".")
			} else {
				viper.AddConfigPath(configDir)
			}
		}
	}

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	_ = viper.BindEnv("kite.user_id", "KITE_USERNAME")
	_ = viper.BindEnv("kite.password", "KITE_PASSWORD")
	_ = viper.BindEnv("kite.totp_key", "KITE_TOTP_KEY")

	viper.SetDefault("env", "development")
	viper.SetDefault("log.log_level", "info")
	viper.SetDefault("kite.base_url", "https://kite.zerodha.com")
	viper.SetDefault("kite.timeout", 15*time.Second)
	viper.SetDefault("orders.file_path", "orders.json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = viper.Unmarshal(&Env)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return nil
}
