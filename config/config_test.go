package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	intcode_io "github.com/ezrec/intcode/io"
)

func TestConfig_Parse(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse(strings.NewReader(`
verbose = true

[memory]
capacity = 4096
limit = 65536

[run]
tick_limit = 1000000

[robot]
start = 1
`))
	assert.NoError(err)
	assert.True(cfg.Verbose)
	assert.Equal(cpu.MEMORY_SCALE, cfg.Memory.Scale)
	assert.Equal(4096, cfg.Memory.Capacity)
	assert.Equal(65536, cfg.Memory.Limit)
	assert.Equal(1000000, cfg.Run.TickLimit)
	assert.Equal(int64(1), cfg.Robot.Start)

	cfg, err = Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestConfig_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(strings.NewReader("[memory]\nsize = 3\n"))
	assert.Equal(ErrConfigKey{"memory.size"}, err)

	_, err = Parse(strings.NewReader("[run]\ntick_limit = -1\n"))
	assert.ErrorIs(err, ErrConfigValue)

	_, err = Parse(strings.NewReader("[robot]\nstart = 2\n"))
	assert.ErrorIs(err, ErrConfigValue)
	assert.ErrorIs(err, intcode_io.ErrHullColor)

	_, err = Parse(strings.NewReader("verbose = "))
	assert.Error(err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestConfig_Apply(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "intcode.toml")
	err := os.WriteFile(path, []byte("[memory]\nscale = 8\nlimit = 100\n[run]\ntick_limit = 50\n[robot]\nstart = 1\n"), 0o644)
	assert.NoError(err)

	cfg, err := Load(path)
	assert.NoError(err)

	hull := &intcode_io.Hull{}
	emu := emulator.NewEmulator()
	emu.Channel = hull
	cfg.Apply(emu)

	assert.False(emu.Verbose)
	assert.Equal(8, emu.Scale)
	assert.Equal(0, emu.Capacity)
	assert.Equal(100, emu.Limit)
	assert.Equal(50, emu.TickLimit)
	assert.Equal(intcode_io.COLOR_WHITE, hull.Start)
}
