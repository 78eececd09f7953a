package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the root configuration for emotai.
type Config struct {
	Service   ServiceConfig   `json:"service"`
	Pacing    PacingConfig    `json:"pacing"`
	Particles ParticlesConfig `json:"particles"`
	Log       LogConfig       `json:"log"`
}

// ServiceConfig locates the suggestion service.
type ServiceConfig struct {
	BaseURL        string   `json:"base_url"`
	Timeout        Duration `json:"timeout,omitempty"`
	// HealthInterval is how often the TUI probes the service.
	HealthInterval Duration `json:"health_interval,omitempty"`
}

// PacingConfig holds the minimum display delays applied after a successful
// response.
type PacingConfig struct {
	SuggestDelay Duration `json:"suggest_delay,omitempty"`
	RefreshDelay Duration `json:"refresh_delay,omitempty"`
}

// ParticlesConfig configures the ambient particle field of the TUI.
type ParticlesConfig struct {
	Disabled      bool     `json:"disabled,omitempty"`
	Count         int      `json:"count,omitempty"`
	Palette       []string `json:"palette,omitempty"`
	AmplitudeX    float64  `json:"amplitude_x,omitempty"` // cells
	AmplitudeY    float64  `json:"amplitude_y,omitempty"` // cells
	Speed         float64  `json:"speed,omitempty"`       // rad/s
	FrameInterval Duration `json:"frame_interval,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level,omitempty"` // debug, info, warn, error
}

// SlogLevel maps Level to a slog.Level. Unknown values fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Duration wraps time.Duration for JSON. It reads "800ms"-style strings, or a
// bare number of milliseconds.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		dur, err := time.ParseDuration(s[1 : len(s)-1])
		if err != nil {
			return err
		}
		*d = Duration(dur)
		return nil
	}
	var ms int64
	if _, err := fmt.Sscan(s, &ms); err != nil {
		return fmt.Errorf("invalid duration %s", s)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
