package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the optional settings read from ~/.config/treegrid/config.toml.
// Only cosmetic preferences live here; anything that changes conversion
// semantics stays on flags.
//
// Example file:
//
//	sheet_name = "Data"
//	indent = 4
//	no_merge = true
type Config struct {
	SheetName string `toml:"sheet_name"`
	Indent    int    `toml:"indent"`
	NoMerge   bool   `toml:"no_merge"`
	NoHistory bool   `toml:"no_history"`
}

// loadConfig reads the config file at path, falling back to the default
// location when path is empty. Config values only supply flag defaults,
// so a missing or unreadable file falls back to zero values rather than
// blocking the run.
func loadConfig(path string) Config {
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return Config{}
		}
	}
	return loadConfigFrom(path)
}

// configFlagFromArgs pre-scans the raw command line for --config.
func configFlagFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, "--config=") {
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

func loadConfigFrom(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
