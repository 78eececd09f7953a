package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/tailscale/hujson"
)

// Default values.
const (
	DefaultBaseURL       = "http://127.0.0.1:5000"
	DefaultTimeout       = 30 * time.Second
	DefaultHealthEvery   = 15 * time.Second
	DefaultSuggestDelay  = 1000 * time.Millisecond
	DefaultRefreshDelay  = 800 * time.Millisecond
	DefaultParticleCount = 20
	DefaultAmplitudeX    = 10.0
	DefaultAmplitudeY    = 5.0
	DefaultSpeed         = 1.0
	DefaultFrameInterval = 100 * time.Millisecond
)

// DefaultPalette is the particle palette used when none is configured.
var DefaultPalette = []string{"#00ffff", "#ff00ff", "#00ff00", "#ffff00", "#ff0080"}

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates,
// standardizes it to plain JSON, unmarshals it into Config and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes JSONC config bytes.
func Parse(data []byte) (*Config, error) {
	// Templates live inside string literals, so expand before standardizing.
	expanded := expandEnvTemplates(string(data))

	std, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.Service.BaseURL == "" {
		if v := os.Getenv("EMOTAI_SERVICE_URL"); v != "" {
			cfg.Service.BaseURL = v
		} else {
			cfg.Service.BaseURL = DefaultBaseURL
		}
	}
	if cfg.Service.Timeout <= 0 {
		cfg.Service.Timeout = Duration(DefaultTimeout)
	}
	if cfg.Service.HealthInterval <= 0 {
		cfg.Service.HealthInterval = Duration(DefaultHealthEvery)
	}

	// Absent means default; a negative delay means none.
	if cfg.Pacing.SuggestDelay == 0 {
		cfg.Pacing.SuggestDelay = Duration(DefaultSuggestDelay)
	} else if cfg.Pacing.SuggestDelay < 0 {
		cfg.Pacing.SuggestDelay = 0
	}
	if cfg.Pacing.RefreshDelay == 0 {
		cfg.Pacing.RefreshDelay = Duration(DefaultRefreshDelay)
	} else if cfg.Pacing.RefreshDelay < 0 {
		cfg.Pacing.RefreshDelay = 0
	}

	p := &cfg.Particles
	if p.Count <= 0 {
		p.Count = DefaultParticleCount
	}
	if len(p.Palette) == 0 {
		p.Palette = append([]string(nil), DefaultPalette...)
	}
	if p.AmplitudeX == 0 {
		p.AmplitudeX = DefaultAmplitudeX
	}
	if p.AmplitudeY == 0 {
		p.AmplitudeY = DefaultAmplitudeY
	}
	if p.Speed <= 0 {
		p.Speed = DefaultSpeed
	}
	if p.FrameInterval <= 0 {
		p.FrameInterval = Duration(DefaultFrameInterval)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
