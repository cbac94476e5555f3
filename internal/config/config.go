// Package config loads tide-config.toml plus environment overrides and
// owns logger initialization.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config materialises application configuration.
type Config struct {
	Station StationConfig `mapstructure:"station"`
	Display DisplayConfig `mapstructure:"display"`
	Cache   CacheConfig   `mapstructure:"cache"`
	NOAA    NOAAConfig    `mapstructure:"noaa"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StationConfig identifies the NOAA station being tracked.
type StationConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
	// MSLOffsetFt converts MLLW heights to mean-sea-level when ShowMSL
	// is set. NOAA publishes the per-station offset on its datums page.
	MSLOffsetFt float64 `mapstructure:"msl_offset"`
	ShowMSL     bool    `mapstructure:"show_msl"`
}

// DisplayConfig sizes the render surface.
type DisplayConfig struct {
	Width      int `mapstructure:"width"`
	Height     int `mapstructure:"height"`
	FontHeight int `mapstructure:"font_height"`
}

// CacheConfig governs the single-slot series cache.
type CacheConfig struct {
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// NOAAConfig covers upstream connectivity.
type NOAAConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig describes logger runtime configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load builds configuration from file, environment, and defaults. An
// empty path falls back to tide-config.toml in the working directory; a
// missing file is fine, the defaults describe a usable station.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIDETRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tide-config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("station.id", "8418150")
	v.SetDefault("station.name", "Portland, ME")
	v.SetDefault("station.msl_offset", 4.9)
	v.SetDefault("station.show_msl", false)

	v.SetDefault("display.width", 400)
	v.SetDefault("display.height", 300)
	v.SetDefault("display.font_height", 20)

	v.SetDefault("cache.path", "/tmp/tide_cache.json")
	v.SetDefault("cache.ttl", "30m")

	v.SetDefault("noaa.base_url", "https://api.tidesandcurrents.noaa.gov")
	v.SetDefault("noaa.timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Station.ID == "" {
		return fmt.Errorf("station.id must be set")
	}
	if c.Display.Width < 2 || c.Display.Height < 2 {
		return fmt.Errorf("display.width and display.height must be at least 2")
	}
	if c.Display.FontHeight <= 0 {
		return fmt.Errorf("display.font_height must be greater than zero")
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache.path must be set")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be greater than zero")
	}
	if c.NOAA.BaseURL == "" {
		return fmt.Errorf("noaa.base_url must be set")
	}
	if c.NOAA.Timeout <= 0 {
		return fmt.Errorf("noaa.timeout must be greater than zero")
	}
	return nil
}

// InitializeLogging sets up the global logger from the logging section.
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(c.Logging.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
