package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Bills   BillsConfig   `yaml:"bills" mapstructure:"bills"`
	Receipt ReceiptConfig `yaml:"receipt" mapstructure:"receipt"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// BillsConfig locates the region files.
type BillsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ReceiptConfig configures the popup receipt layout.
type ReceiptConfig struct {
	Filler string `yaml:"filler" mapstructure:"filler"`
}

// FillerRune returns the configured filler glyph. Call Validate first.
func (r ReceiptConfig) FillerRune() rune {
	c, _ := utf8.DecodeRuneInString(r.Filler)
	return c
}

// DisplayConfig configures how dashboard metrics are rendered.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol" mapstructure:"currency_symbol"`
	Locale         string `yaml:"locale" mapstructure:"locale"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port         int  `yaml:"port" mapstructure:"port"`
	RateLimit    int  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Cache        bool `yaml:"cache" mapstructure:"cache"`
	CacheTTLSecs int  `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("billmap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BILLMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("bills.dir", "bills")
	v.SetDefault("receipt.filler", "-")
	v.SetDefault("display.currency_symbol", "£")
	v.SetDefault("display.locale", "en-GB")
	v.SetDefault("server.port", 8501)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.cache", false)
	v.SetDefault("server.cache_ttl_secs", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields every command relies on.
func (c *Config) Validate() error {
	var missing []string

	if strings.TrimSpace(c.Bills.Dir) == "" {
		missing = append(missing, "bills.dir is required")
	}
	if utf8.RuneCountInString(c.Receipt.Filler) != 1 {
		missing = append(missing, fmt.Sprintf("receipt.filler must be a single character, got %q", c.Receipt.Filler))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		missing = append(missing, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 {
		missing = append(missing, fmt.Sprintf("server.rate_limit must be positive, got %d", c.Server.RateLimit))
	}
	if c.Server.Cache && c.Server.CacheTTLSecs <= 0 {
		missing = append(missing, "server.cache_ttl_secs must be positive when server.cache is enabled")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
