package config

import (
	"os"
	"path/filepath"
)

// EmotaiPath returns the root directory for emotai data.
// It uses $EMOTAI_PATH if set, otherwise defaults to ~/.emotai.
func EmotaiPath() string {
	if v := os.Getenv("EMOTAI_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".emotai")
	}
	return filepath.Join(home, ".emotai")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(EmotaiPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(EmotaiPath(), ".env")
}

// LogPath returns the file the TUI writes its logs to.
func LogPath() string {
	return filepath.Join(EmotaiPath(), "emotai.log")
}

// SessionsPath returns the directory holding persisted service sessions.
func SessionsPath() string {
	return filepath.Join(EmotaiPath(), "sessions")
}
