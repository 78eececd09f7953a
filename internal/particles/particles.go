// Package particles animates a fixed set of decorative points. Origins and
// colors are drawn once; a particle's visible position is a pure function of
// elapsed time and is never stored.
package particles

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

// Defaults. Amplitudes are in viewport units (terminal cells for the TUI);
// cells are roughly twice as tall as they are wide, hence the smaller Y.
const (
	DefaultCount      = 20
	DefaultAmplitudeX = 10.0
	DefaultAmplitudeY = 5.0
	DefaultSpeed      = 1.0 // rad/s
)

// DefaultPalette is the neon palette particles pick their color from.
var DefaultPalette = []string{"#00ffff", "#ff00ff", "#00ff00", "#ffff00", "#ff0080"}

// Point is a position in viewport space.
type Point struct {
	X, Y float64
}

// Particle is a seeded point. Origin and Color never change after New.
type Particle struct {
	ID     int
	Origin Point
	Color  string
}

// Placed is a particle together with its position at some instant.
type Placed struct {
	Particle
	Pos Point
}

// Engine holds the seeded particles. It is safe for concurrent use: nothing
// is mutated after New.
type Engine struct {
	particles []Particle
	ampX      float64
	ampY      float64
	speed     float64
	width     float64
	height    float64
}

type settings struct {
	count   int
	palette []string
	ampX    float64
	ampY    float64
	speed   float64
	rng     *rand.Rand
}

// Option configures an Engine.
type Option func(*settings)

// WithCount sets the number of particles.
func WithCount(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.count = n
		}
	}
}

// WithPalette sets the colors particles are drawn from. An empty palette
// keeps the default.
func WithPalette(colors []string) Option {
	return func(s *settings) {
		if len(colors) > 0 {
			s.palette = slices.Clone(colors)
		}
	}
}

// WithAmplitude sets the maximum displacement on each axis.
func WithAmplitude(x, y float64) Option {
	return func(s *settings) {
		s.ampX, s.ampY = math.Abs(x), math.Abs(y)
	}
}

// WithSpeed sets the angular speed in radians per second.
func WithSpeed(radPerSec float64) Option {
	return func(s *settings) {
		if radPerSec > 0 {
			s.speed = radPerSec
		}
	}
}

// WithRand seeds from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// New seeds the particles uniformly over a width x height viewport.
func New(width, height int, opts ...Option) *Engine {
	s := settings{
		count:   DefaultCount,
		palette: DefaultPalette,
		ampX:    DefaultAmplitudeX,
		ampY:    DefaultAmplitudeY,
		speed:   DefaultSpeed,
	}
	for _, opt := range opts {
		opt(&s)
	}

	w, h := float64(max(width, 0)), float64(max(height, 0))
	e := &Engine{
		particles: make([]Particle, s.count),
		ampX:      s.ampX,
		ampY:      s.ampY,
		speed:     s.speed,
		width:     w,
		height:    h,
	}
	for i := range e.particles {
		e.particles[i] = Particle{
			ID:     i,
			Origin: Point{X: s.randFloat() * w, Y: s.randFloat() * h},
			Color:  s.palette[s.randIntN(len(s.palette))],
		}
	}
	return e
}

func (s *settings) randFloat() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}

func (s *settings) randIntN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Len returns the number of particles.
func (e *Engine) Len() int { return len(e.particles) }

// Viewport returns the extent the origins were drawn from.
func (e *Engine) Viewport() (width, height float64) { return e.width, e.height }

// Particles returns a copy of the seeded particles.
func (e *Engine) Particles() []Particle {
	return slices.Clone(e.particles)
}

// Period is the time after which every particle is back where it started.
func (e *Engine) Period() time.Duration {
	return time.Duration(2 * math.Pi / e.speed * float64(time.Second))
}

// Displacement is the offset of particle id from its origin after t.
// |X| <= amplitude x and |Y| <= amplitude y for every t.
func (e *Engine) Displacement(id int, t time.Duration) Point {
	phase := e.speed*t.Seconds() + float64(id)
	return Point{
		X: e.ampX * math.Sin(phase),
		Y: e.ampY * math.Cos(phase),
	}
}

// Position is p's visible position after t.
func (e *Engine) Position(p Particle, t time.Duration) Point {
	d := e.Displacement(p.ID, t)
	return Point{X: p.Origin.X + d.X, Y: p.Origin.Y + d.Y}
}

// Frame places every particle at time t.
func (e *Engine) Frame(t time.Duration) []Placed {
	out := make([]Placed, len(e.particles))
	for i, p := range e.particles {
		out[i] = Placed{Particle: p, Pos: e.Position(p, t)}
	}
	return out
}
