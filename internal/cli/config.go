package cli

import (
	"os"
	"path/filepath"
)

func DefaultConfigPath() string {
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, "loggy", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".loggy.yaml"
	}
	return filepath.Join(home, ".config", "loggy", "config.yaml")
}
