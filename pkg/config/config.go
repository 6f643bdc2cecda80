// Package config loads tableyeah configuration from a TOML file.
//
// The config carries everything the engine treats as policy rather than
// input: the service window, turn-time tiers, and the addresses of the
// optional cache and store backends. Missing fields fall back to
// sensible defaults; validation catches windows and tiers that cannot
// produce a usable layout.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	tyerrors "github.com/KyleKincer/tableyeah/pkg/errors"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// Config is the full application configuration.
type Config struct {
	Service  ServiceConfig  `toml:"service"`
	TurnTime TurnTimeConfig `toml:"turn_time"`
	Server   ServerConfig   `toml:"server"`
	Redis    RedisConfig    `toml:"redis"`
	Mongo    MongoConfig    `toml:"mongo"`
}

// ServiceConfig defines the visible service window.
type ServiceConfig struct {
	StartHour int `toml:"start_hour"`
	EndHour   int `toml:"end_hour"`
}

// TurnTimeConfig maps party-size tiers to minutes.
type TurnTimeConfig struct {
	TwoTop  int `toml:"two_top"`
	FourTop int `toml:"four_top"`
	SixTop  int `toml:"six_top"`
	Large   int `toml:"large"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RedisConfig configures the optional shared layout cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the optional day-sheet store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present:
// a 10:00-23:00 service window and conventional turn times.
func Default() Config {
	return Config{
		Service:  ServiceConfig{StartHour: 10, EndHour: 23},
		TurnTime: TurnTimeConfig{TwoTop: 90, FourTop: 120, SixTop: 150, Large: 180},
		Server:   ServerConfig{Addr: ":8080"},
		Mongo:    MongoConfig{Database: "tableyeah"},
	}
}

// Load reads a TOML config file, layering it over the defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tyerrors.Wrap(tyerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, tyerrors.Wrap(tyerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config for values the engine cannot work with.
func (c Config) Validate() error {
	if err := c.Window().Validate(); err != nil {
		return tyerrors.Wrap(tyerrors.ErrCodeInvalidWindow, err, "service window")
	}
	for name, v := range map[string]int{
		"two_top":  c.TurnTime.TwoTop,
		"four_top": c.TurnTime.FourTop,
		"six_top":  c.TurnTime.SixTop,
		"large":    c.TurnTime.Large,
	} {
		if v <= 0 {
			return tyerrors.New(tyerrors.ErrCodeInvalidConfig, "turn_time.%s must be positive, got %d", name, v)
		}
	}
	return nil
}

// Window converts the service section to the engine type.
func (c Config) Window() timeline.ServiceWindow {
	return timeline.ServiceWindow{StartHour: c.Service.StartHour, EndHour: c.Service.EndHour}
}

// Policy converts the turn-time section to the engine type.
func (c Config) Policy() timeline.TurnTimePolicy {
	return timeline.TurnTimePolicy{
		TwoTop:  c.TurnTime.TwoTop,
		FourTop: c.TurnTime.FourTop,
		SixTop:  c.TurnTime.SixTop,
		Large:   c.TurnTime.Large,
	}
}

// DefaultPath returns the XDG config location (~/.config/tableyeah/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tableyeah", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tableyeah", "config.toml"), nil
}
