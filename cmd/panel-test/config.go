package main

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SPIConfig describes the SPI bus wiring in the probe config file.
type SPIConfig struct {
	Bus     int    `yaml:"bus"`
	Device  int    `yaml:"device"`
	SpeedHz uint32 `yaml:"speed_hz"`
}

// PinConfig names the GPIO pins by their periph.io names.
type PinConfig struct {
	Reset string `yaml:"reset"`
	DC    string `yaml:"dc"`
	CE    string `yaml:"ce"`
}

// Config is the probe tool configuration.
type Config struct {
	// Model is the compatible string of the attached controller.
	Model string `yaml:"model"`

	SPI  SPIConfig `yaml:"spi"`
	Pins PinConfig `yaml:"pins"`

	// Rotation in degrees: 0, 90, 180 or 270.
	Rotation int `yaml:"rotation"`

	// Watchdog bounds each lifecycle transition as a duration string
	// ("10s"); empty disables it.
	Watchdog string `yaml:"watchdog"`
}

// WatchdogDuration parses the watchdog budget.
func (c *Config) WatchdogDuration() (time.Duration, error) {
	if c.Watchdog == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Watchdog)
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		SPI: SPIConfig{
			Bus:     0,
			Device:  0,
			SpeedHz: 8_000_000,
		},
		Pins: PinConfig{
			Reset: "GPIO25",
			DC:    "GPIO24",
		},
	}
}

// Normalize fills in missing values so a partially filled config still
// behaves.
func (c *Config) Normalize() {
	if c.SPI.SpeedHz == 0 {
		c.SPI.SpeedHz = 8_000_000
	}
	if c.Pins.Reset == "" {
		c.Pins.Reset = "GPIO25"
	}
	if c.Pins.DC == "" {
		c.Pins.DC = "GPIO24"
	}
}

// Load loads configuration from the given YAML path; an empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	if cfg.Model == "" {
		return nil, errors.New("config: model is required")
	}
	return &cfg, nil
}
