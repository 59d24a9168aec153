package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/trickstertwo/xarray/diag/adapter/console"
)

// FileConfig is the declarative form of a diagnostics setup, suitable for a
// TOML file:
//
//	min_level = "warn"
//	output    = "stderr"   # stderr | stdout | discard
//	color     = "auto"     # auto | always | never
//	caller    = true
type FileConfig struct {
	MinLevel string `toml:"min_level"`
	Output   string `toml:"output"`
	Color    string `toml:"color"`
	Caller   bool   `toml:"caller"`
}

// LoadConfig decodes a FileConfig from a TOML file.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("diag: load %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return FileConfig{}, fmt.Errorf("diag: load %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

// DecodeConfig decodes a FileConfig from TOML text.
func DecodeConfig(data string) (FileConfig, error) {
	var cfg FileConfig
	if _, err := toml.Decode(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("diag: decode config: %w", err)
	}
	return cfg, nil
}

// Use registers the sink described by cfg as the process-wide Callback,
// installs a matching global Logger and returns it.
func Use(cfg FileConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.MinLevel)
	if err != nil {
		return nil, err
	}
	mode, err := console.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}

	var cb Callback
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		cb = console.Std(os.Stderr, mode)
	case "stdout":
		cb = console.Std(os.Stdout, mode)
	case "discard":
		cb = console.New(io.Discard, console.Never)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, cfg.Output)
	}

	l, err := NewBuilder().
		WithMinLevel(level).
		WithCaller(cfg.Caller).
		Build()
	if err != nil {
		return nil, err
	}
	Register(cb)
	SetGlobal(l)
	return l, nil
}

// MustUse is Use that panics on a bad configuration, for main packages.
func MustUse(cfg FileConfig) *Logger {
	l, err := Use(cfg)
	if err != nil {
		panic(err)
	}
	return l
}
