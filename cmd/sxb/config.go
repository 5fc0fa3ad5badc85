package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/spf13/pflag"
)

type config struct {
	Driver string
	Port   string
	Baud   int
	Native bool
}

func defaultConfig() config {
	return config{
		Driver: "serial",
		Baud:   9600,
	}
}

// sxb.toml key mapping.
type fileConfig struct {
	Driver string `toml:"driver"`
	Port   string `toml:"port"`
	Baud   int    `toml:"baud"`
	Native bool   `toml:"native"`
}

// loadConfig overlays a TOML file onto the defaults. With an empty path the
// user config file is used if present, silently skipped if not; an explicit
// path must exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		confDir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(confDir, "sxb.toml")
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("driver") {
		cfg.Driver = raw.Driver
	}
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("baud") {
		cfg.Baud = raw.Baud
	}
	if meta.IsDefined("native") {
		cfg.Native = raw.Native
	}
	return cfg, nil
}

// applyFlags lets explicitly set command-line flags win over the config
// file.
func applyFlags(cfg *config) {
	if pflag.CommandLine.Changed("driver") {
		cfg.Driver = *flagDriver
	}
	if pflag.CommandLine.Changed("port") {
		cfg.Port = *flagPort
	}
	if pflag.CommandLine.Changed("baud") {
		cfg.Baud = *flagBaud
	}
	if pflag.CommandLine.Changed("native") {
		cfg.Native = *flagNative
	}
}
