package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Reloader provides hot config reload with atomic swap and listener notification.
type Reloader struct {
	configPath string
	dotenvPath string
	log        *slog.Logger
	current    atomic.Pointer[Config]
	mu         sync.Mutex // serializes reload
	listeners  []func(*Config)
}

// NewReloader creates a Reloader with the given initial config.
func NewReloader(configPath, dotenvPath string, initial *Config, log *slog.Logger) *Reloader {
	if initial == nil {
		initial = Default()
	}
	if log == nil {
		log = slog.Default()
	}
	r := &Reloader{
		configPath: configPath,
		dotenvPath: dotenvPath,
		log:        log,
	}
	r.current.Store(initial)
	return r
}

// Current returns the current config (lock-free atomic read).
func (r *Reloader) Current() *Config {
	return r.current.Load()
}

// OnReload registers a callback invoked after successful reload.
func (r *Reloader) OnReload(fn func(*Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Reload re-reads the .env file (override mode) and the config file, swaps
// the current config and notifies listeners. A missing config file reloads
// to defaults. On error the current config is kept.
func (r *Reloader) Reload() (*Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ReloadDotenv(r.dotenvPath); err != nil {
		return nil, fmt.Errorf("reload dotenv: %w", err)
	}

	cfg, err := LoadOrDefault(r.configPath)
	if err != nil {
		return nil, fmt.Errorf("reload config: %w", err)
	}

	r.current.Store(cfg)
	r.log.Info("config reloaded", "path", r.configPath)

	for _, fn := range r.listeners {
		fn(cfg)
	}
	return cfg, nil
}
