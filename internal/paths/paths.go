// Package paths resolves the on-disk locations Autonomix uses for
// configuration, persisted state, and downloaded artifacts.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// AppName is the directory name used under the config and data roots.
const AppName = "autonomix"

// Paths holds resolved locations for config files and managed directories.
// Construct with Default for the real user locations, or fill in literal
// directories in tests.
type Paths struct {
	ConfigDir    string
	ConfigPath   string
	StatePath    string
	DataDir      string
	DownloadsDir string
	AppImageDir  string
}

// Default resolves the standard per-user locations:
// ~/.config/autonomix for config and state, ~/.local/share/autonomix for
// downloaded and installed artifacts. XDG overrides are honored.
func Default() (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve home dir: %w", err)
	}

	configRoot := os.Getenv("XDG_CONFIG_HOME")
	if configRoot == "" {
		configRoot = filepath.Join(home, ".config")
	}
	dataRoot := os.Getenv("XDG_DATA_HOME")
	if dataRoot == "" {
		dataRoot = filepath.Join(home, ".local", "share")
	}

	configDir := filepath.Join(configRoot, AppName)
	dataDir := filepath.Join(dataRoot, AppName)
	return Paths{
		ConfigDir:    configDir,
		ConfigPath:   filepath.Join(configDir, "config.toml"),
		StatePath:    filepath.Join(configDir, "apps.json"),
		DataDir:      dataDir,
		DownloadsDir: filepath.Join(dataDir, "downloads"),
		AppImageDir:  filepath.Join(dataDir, "appimages"),
	}, nil
}

// ApplicationsDir returns the per-user desktop entry directory.
func ApplicationsDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dataRoot := os.Getenv("XDG_DATA_HOME")
	if dataRoot == "" {
		dataRoot = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataRoot, "applications"), nil
}

// UserBinDir returns the per-user binary directory (~/.local/bin), used both
// for raw binary installs and for self-install detection.
func UserBinDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}
