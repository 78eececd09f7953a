package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
)

func TestReloader_Current(t *testing.T) {
	cfg := &Config{}
	cfg.Particles.Count = 3

	r := NewReloader("", "", cfg, slogt.New(t))
	if got := r.Current(); got.Particles.Count != 3 {
		t.Errorf("Current().Particles.Count = %d, want 3", got.Particles.Count)
	}

	if NewReloader("", "", nil, nil).Current() == nil {
		t.Error("nil initial config should become defaults")
	}
}

func TestReloader_Reload(t *testing.T) {
	dir := t.TempDir()
	dotenvPath := filepath.Join(dir, ".env")
	configPath := filepath.Join(dir, "config.jsonc")

	if err := os.WriteFile(dotenvPath, []byte("EMOTAI_RELOAD_URL=http://initial\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	configContent := `{
		"service": {"base_url": "${{ .Env.EMOTAI_RELOAD_URL }}"},
		"pacing": {"suggest_delay": "2s"}
	}`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EMOTAI_RELOAD_URL", "http://stale")

	initial := Default()
	r := NewReloader(configPath, dotenvPath, initial, slogt.New(t))

	var callCount atomic.Int32
	var seen atomic.Pointer[Config]
	r.OnReload(func(cfg *Config) {
		callCount.Add(1)
		seen.Store(cfg)
	})

	if err := os.WriteFile(dotenvPath, []byte("EMOTAI_RELOAD_URL=http://reloaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := r.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if os.Getenv("EMOTAI_RELOAD_URL") != "http://reloaded" {
		t.Errorf("EMOTAI_RELOAD_URL = %q, want override", os.Getenv("EMOTAI_RELOAD_URL"))
	}
	if cfg.Service.BaseURL != "http://reloaded" {
		t.Errorf("base_url = %q", cfg.Service.BaseURL)
	}
	if cfg.Pacing.SuggestDelay.Duration() != 2*time.Second {
		t.Errorf("suggest_delay = %v", cfg.Pacing.SuggestDelay.Duration())
	}
	if callCount.Load() != 1 || seen.Load() != cfg {
		t.Errorf("listener called %d times", callCount.Load())
	}
	if r.Current() != cfg || r.Current() == initial {
		t.Error("Current() not swapped after reload")
	}
}

func TestReloader_ReloadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewReloader(filepath.Join(dir, "config.jsonc"), filepath.Join(dir, ".env"), nil, slogt.New(t))

	cfg, err := r.Reload()
	if err != nil {
		t.Fatalf("Reload with missing files: %v", err)
	}
	if cfg.Pacing.RefreshDelay.Duration() != DefaultRefreshDelay {
		t.Errorf("expected defaults, got %+v", cfg.Pacing)
	}
}

func TestReloader_ReloadInvalidKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(configPath, []byte(`{"pacing": `), 0o644); err != nil {
		t.Fatal(err)
	}

	initial := Default()
	r := NewReloader(configPath, filepath.Join(dir, ".env"), initial, slogt.New(t))
	called := false
	r.OnReload(func(*Config) { called = true })

	if _, err := r.Reload(); err == nil {
		t.Fatal("expected error")
	}
	if r.Current() != initial || called {
		t.Error("failed reload must keep the current config and skip listeners")
	}
}
