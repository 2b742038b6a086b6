package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// configDir returns the configuration directory using the XDG standard
// (~/.config/treegrid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// historyPath returns the journal file path, or the empty string when the
// config directory cannot be resolved. history.Open falls back to its own
// default for an empty path.
func historyPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history.jsonl")
}

// configPath returns the configuration file path.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// derivedDest swaps the extension of input for ext, keeping the directory
// and base name. Used when no --output flag is given: flatten cats.json
// writes cats.xlsx next to it, nest cats.xlsx writes cats.json.
func derivedDest(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
