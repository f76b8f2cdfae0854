package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "zipfview"

// AppConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/zipfview or ~/.config/zipfview
// 2. ~/Library/Application Support/zipfview (macOS)
// 3. %APPDATA%\zipfview (Windows)
// 4. the executable's directory
// The first writable candidate wins; callers fall back to built-in
// defaults when even that fails.
func AppConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		return GetExecutableDir()
	}

	primary := filepath.Join(homeDir, ".config", appDirName)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		primary = filepath.Join(configHome, appDirName)
	}
	if result := CheckDirStatus(primary); result.Writable {
		return primary, nil
	}

	switch runtime.GOOS {
	case "darwin":
		alt := filepath.Join(homeDir, "Library", "Application Support", appDirName)
		if result := CheckDirStatus(alt); result.Writable {
			return alt, nil
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			alt := filepath.Join(appData, appDirName)
			if result := CheckDirStatus(alt); result.Writable {
				return alt, nil
			}
		}
	}

	execDir, err := GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}
