// Package config loads trichess settings from an optional JSON file.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "trichess.cfg.json"

// BoardConfig holds tile footprint settings.
type BoardConfig struct {
	TileWidth  float64 `json:"tileWidth" mapstructure:"tileWidth"`
	TileHeight float64 `json:"tileHeight" mapstructure:"tileHeight"`
}

// Settings is a typed view of the loaded configuration.
type Settings struct {
	LogLevel string      `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string      `json:"logFile" mapstructure:"logFile"`
	Board    BoardConfig `json:"board" mapstructure:"board"`
	DB       struct {
		Path string `json:"path" mapstructure:"path"`
	} `json:"db" mapstructure:"db"`
	History struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
	} `json:"history" mapstructure:"history"`
	Metrics struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
	} `json:"metrics" mapstructure:"metrics"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("db.path", "")

	viper.SetDefault("board.tileWidth", math.Sqrt(3)/2)
	viper.SetDefault("board.tileHeight", 1.0)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("metrics.enabled", false)
}

// Reset clears all loaded values and overrides.
func Reset() {
	viper.Reset()
}

// Load sets default values and reads trichess.cfg.json from configDir.
// A missing file leaves the defaults in place; a malformed one is an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Snapshot returns the current settings.
func Snapshot() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if s.Board.TileWidth <= 0 || s.Board.TileHeight <= 0 {
		return Settings{}, fmt.Errorf("invalid board footprint %vx%v", s.Board.TileWidth, s.Board.TileHeight)
	}
	return s, nil
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Set overrides a config value, e.g. from a command-line flag.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}
