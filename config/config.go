package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sensordemos/game"
	"sensordemos/proximity"
	"sensordemos/source"
)

type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	Proximity   ProximityConfig   `mapstructure:"proximity"`
	Tilt        TiltConfig        `mapstructure:"tilt"`
	Audio       AudioConfig       `mapstructure:"audio"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GeolocationConfig struct {
	HighAccuracy bool          `mapstructure:"high_accuracy"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (g GeolocationConfig) WatchOptions() source.WatchOptions {
	o := source.DefaultWatchOptions()
	o.HighAccuracy = g.HighAccuracy
	o.MaxAge = g.MaxAge
	o.Timeout = g.Timeout
	return o
}

type ProximityConfig struct {
	AlertRadiusMeters float64 `mapstructure:"alert_radius_meters"`
}

type TiltConfig struct {
	Sensitivity float64 `mapstructure:"sensitivity"`
	WinRadius   float64 `mapstructure:"win_radius"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// InitEnv loads a .env file into the process environment. A missing file is
// not an error.
func InitEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// Load reads defaults, an optional config.yaml and SENSORDEMOS_* variables,
// in increasing priority.
func Load(paths ...string) (*Config, error) {
	if err := InitEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("geolocation.high_accuracy", true)
	v.SetDefault("geolocation.max_age", 5*time.Second)
	v.SetDefault("geolocation.timeout", 10*time.Second)
	v.SetDefault("proximity.alert_radius_meters", proximity.AlertRadiusMeters)
	v.SetDefault("tilt.sensitivity", game.Sensitivity)
	v.SetDefault("tilt.win_radius", game.WinRadius)
	v.SetDefault("audio.enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// SENSORDEMOS_TILT_WIN_RADIUS -> tilt.win_radius
	v.SetEnvPrefix("SENSORDEMOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Geolocation.MaxAge < 0 {
		errs = append(errs, "geolocation.max_age must not be negative")
	}
	if c.Geolocation.Timeout <= 0 {
		errs = append(errs, "geolocation.timeout must be positive")
	}
	if c.Proximity.AlertRadiusMeters <= 0 {
		errs = append(errs, fmt.Sprintf("proximity.alert_radius_meters must be positive, got %g", c.Proximity.AlertRadiusMeters))
	}
	if c.Tilt.Sensitivity <= 0 {
		errs = append(errs, fmt.Sprintf("tilt.sensitivity must be positive, got %g", c.Tilt.Sensitivity))
	}
	if c.Tilt.WinRadius <= 0 {
		errs = append(errs, fmt.Sprintf("tilt.win_radius must be positive, got %g", c.Tilt.WinRadius))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
