// Package config loads optional VM tuning parameters from a TOML file.
// Every field defaults to exactly the canonical spec value when no file is
// given, so running without --config reproduces the spec's defaults.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/dice-systems/botvm/vm"
)

// Config holds the tunables a host may want to override per deployment.
type Config struct {
	// Memory holds the M_min/M_max growth bounds (words).
	Memory struct {
		Min uint32 `toml:"min"`
		Max uint32 `toml:"max"`
	} `toml:"memory"`

	// Argument is the payload handed to a guest program the first time it
	// raises the ARGUMENT interrupt (0x0A). Empty means no payload.
	Argument string `toml:"argument"`

	// Debug enables verbose host-side logging. It does not start the
	// interactive debugger; that is the debug subcommand.
	Debug bool `toml:"debug"`
}

// Default returns a Config matching the canonical spec values exactly.
func Default() Config {
	c := Config{}
	c.Memory.Min = vm.DefaultMinMemWords
	c.Memory.Max = vm.DefaultMaxMemWords
	return c
}

// Load reads a TOML file at path, starting from Default() and overwriting
// only the fields the file sets. An empty path is not an error and yields
// Default(); a path that cannot be read, or a malformed file, is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the config into vm.Option values for vm.New.
func (c Config) Options() []vm.Option {
	return []vm.Option{vm.WithMemoryLimits(c.Memory.Min, c.Memory.Max)}
}
