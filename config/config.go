// Package config handles the intcode.toml run configuration.
package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	intcode_io "github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrConfigValue = errors.New(f("config: invalid value"))
)

// ErrConfigKey is returned for keys the configuration does not know.
type ErrConfigKey []string

func (err ErrConfigKey) Error() string {
	return f("config: unknown keys: %v", strings.Join(err, ", "))
}

// Config represents an intcode.toml run configuration.
type Config struct {
	Verbose bool   `toml:"verbose"`
	Memory  Memory `toml:"memory"`
	Run     Run    `toml:"run"`
	Robot   Robot  `toml:"robot"`
}

// Memory sizing.
type Memory struct {
	Scale    int `toml:"scale"`    // Capacity as a multiple of program length.
	Capacity int `toml:"capacity"` // Explicit capacity; overrides Scale when non-zero.
	Limit    int `toml:"limit"`    // Growth ceiling; zero keeps memory fixed.
}

// Run limits.
type Run struct {
	TickLimit int `toml:"tick_limit"` // Zero is unlimited.
}

// Robot settings for the hull painter.
type Robot struct {
	Start int64 `toml:"start"` // Color of the starting panel.
}

// Default returns the configuration used without a file.
func Default() (cfg *Config) {
	cfg = &Config{}
	cfg.Memory.Scale = cpu.MEMORY_SCALE
	return
}

// Parse decodes a configuration from TOML text.
func Parse(input io.Reader) (cfg *Config, err error) {
	cfg = Default()

	meta, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = ErrConfigKey(keys)
		return
	}

	// Defaults
	if cfg.Memory.Scale == 0 {
		cfg.Memory.Scale = cpu.MEMORY_SCALE
	}

	err = cfg.validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Load parses the configuration file at 'path'.
func Load(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = Parse(inf)

	return
}

func (cfg *Config) validate() (err error) {
	switch {
	case cfg.Memory.Scale < 0,
		cfg.Memory.Capacity < 0,
		cfg.Memory.Limit < 0,
		cfg.Run.TickLimit < 0:
		err = ErrConfigValue
	case intcode_io.Color(cfg.Robot.Start) != intcode_io.COLOR_BLACK &&
		intcode_io.Color(cfg.Robot.Start) != intcode_io.COLOR_WHITE:
		err = errors.Join(ErrConfigValue, intcode_io.ErrHullColor)
	}

	return
}

// Apply copies the configuration into the emulator, and into its hull
// robot if one is attached.
func (cfg *Config) Apply(emu *emulator.Emulator) {
	emu.Verbose = emu.Verbose || cfg.Verbose
	emu.Scale = cfg.Memory.Scale
	emu.Capacity = cfg.Memory.Capacity
	emu.Limit = cfg.Memory.Limit
	emu.TickLimit = cfg.Run.TickLimit

	if hull, ok := emu.Channel.(*intcode_io.Hull); ok {
		hull.Start = intcode_io.Color(cfg.Robot.Start)
	}
}
