package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `{
	// This is a JSONC comment
	"service": {
		"base_url": "${{ .Env.EMOTAI_TEST_URL }}",
		"timeout": "5s",
	},
	"pacing": {
		"suggest_delay": "250ms",
		"refresh_delay": 100, // bare milliseconds
	},
	"particles": {
		"count": 7,
		"palette": ["#ffffff"],
		"frame_interval": "50ms"
	},
	"log": {"level": "debug"}
}`
	path := writeConfig(t, content)
	t.Setenv("EMOTAI_TEST_URL", "http://emotai.test:8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Service.BaseURL != "http://emotai.test:8080" {
		t.Errorf("expected base_url from env, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout.Duration() != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Service.Timeout.Duration())
	}
	if cfg.Pacing.SuggestDelay.Duration() != 250*time.Millisecond {
		t.Errorf("expected suggest_delay 250ms, got %v", cfg.Pacing.SuggestDelay.Duration())
	}
	if cfg.Pacing.RefreshDelay.Duration() != 100*time.Millisecond {
		t.Errorf("expected refresh_delay 100ms, got %v", cfg.Pacing.RefreshDelay.Duration())
	}
	if cfg.Particles.Count != 7 {
		t.Errorf("expected 7 particles, got %d", cfg.Particles.Count)
	}
	if diff := cmp.Diff([]string{"#ffffff"}, cfg.Particles.Palette); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if cfg.Particles.Speed != DefaultSpeed {
		t.Errorf("expected default speed, got %v", cfg.Particles.Speed)
	}
	if cfg.Log.SlogLevel().String() != "DEBUG" {
		t.Errorf("expected debug level, got %s", cfg.Log.SlogLevel())
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EMOTAI_SERVICE_URL", "")
	cfg, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}

	want := &Config{
		Service: ServiceConfig{
			BaseURL:        DefaultBaseURL,
			Timeout:        Duration(DefaultTimeout),
			HealthInterval: Duration(DefaultHealthEvery),
		},
		Pacing: PacingConfig{
			SuggestDelay: Duration(DefaultSuggestDelay),
			RefreshDelay: Duration(DefaultRefreshDelay),
		},
		Particles: ParticlesConfig{
			Count:         20,
			Palette:       []string{"#00ffff", "#ff00ff", "#00ff00", "#ffff00", "#ff0080"},
			AmplitudeX:    DefaultAmplitudeX,
			AmplitudeY:    DefaultAmplitudeY,
			Speed:         1,
			FrameInterval: Duration(100 * time.Millisecond),
		},
		Log: LogConfig{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaults_ServiceURLFromEnv(t *testing.T) {
	t.Setenv("EMOTAI_SERVICE_URL", "http://from-env:5000")
	cfg, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Service.BaseURL != "http://from-env:5000" {
		t.Errorf("expected env base url, got %s", cfg.Service.BaseURL)
	}
}

func TestLoad_NegativeDelayDisables(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"pacing": {"suggest_delay": "-1ms", "refresh_delay": -1}}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pacing.SuggestDelay != 0 || cfg.Pacing.RefreshDelay != 0 {
		t.Errorf("expected zero delays, got %+v", cfg.Pacing)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{"service": `},
		{"bad duration", `{"pacing": {"suggest_delay": "soon"}}`},
		{"wrong type", `{"particles": {"count": "many"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.jsonc"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles.Count != DefaultParticleCount {
		t.Errorf("expected defaults, got %+v", cfg.Particles)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestExpandEnvTemplates(t *testing.T) {
	t.Setenv("TEST_KEY", "my-secret")
	result := expandEnvTemplates(`{"key": "${{ .Env.TEST_KEY }}"}`)
	expected := `{"key": "my-secret"}`
	if result != expected {
		t.Errorf("expected %s, got %s", expected, result)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel().String(); got != want {
			t.Errorf("SlogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDurationMarshal(t *testing.T) {
	b, err := Duration(1500 * time.Millisecond).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"1.5s"` {
		t.Errorf("got %s", b)
	}
}
