package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the path configuration for dms.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/dms)
	ConfigDir string

	// DataDir is the directory for data files such as the session
	// database (~/.local/share/dms)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base
// Directory spec. On Windows, %APPDATA% is used instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "dms"),
			DataDir:   filepath.Join(localAppData, "dms"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "dms"),
		DataDir:   filepath.Join(dataHome, "dms"),
	}
}

// ConfigFile returns the path to the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// SessionDB returns the path to the session database.
func (p *Paths) SessionDB() string {
	return filepath.Join(p.DataDir, "state.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
