package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmotaiPath_Default(t *testing.T) {
	t.Setenv("EMOTAI_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := EmotaiPath()
	want := filepath.Join(home, ".emotai")
	if got != want {
		t.Errorf("EmotaiPath() = %q, want %q", got, want)
	}
}

func TestEmotaiPath_EnvOverride(t *testing.T) {
	t.Setenv("EMOTAI_PATH", "/tmp/custom-emotai")

	if got := EmotaiPath(); got != "/tmp/custom-emotai" {
		t.Errorf("EmotaiPath() = %q", got)
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("EMOTAI_PATH", "/tmp/test-emotai")

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"config", ConfigPath, "/tmp/test-emotai/config.jsonc"},
		{"dotenv", DotenvPath, "/tmp/test-emotai/.env"},
		{"log", LogPath, "/tmp/test-emotai/emotai.log"},
	}
	for _, tt := range tests {
		if got := tt.fn(); got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, got, tt.want)
		}
	}
}
