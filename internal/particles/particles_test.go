package particles

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestNew_Defaults(t *testing.T) {
	e := New(120, 40, seeded())

	if e.Len() != 20 {
		t.Fatalf("expected 20 particles, got %d", e.Len())
	}
	for _, p := range e.Particles() {
		if p.Origin.X < 0 || p.Origin.X >= 120 || p.Origin.Y < 0 || p.Origin.Y >= 40 {
			t.Errorf("particle %d origin %+v outside viewport", p.ID, p.Origin)
		}
		if !slices.Contains(DefaultPalette, p.Color) {
			t.Errorf("particle %d color %q not in palette", p.ID, p.Color)
		}
	}
}

func TestNew_IDsAreSequential(t *testing.T) {
	e := New(10, 10, seeded())
	for i, p := range e.Particles() {
		if p.ID != i {
			t.Errorf("index %d has id %d", i, p.ID)
		}
	}
}

func TestNew_Options(t *testing.T) {
	e := New(50, 20, seeded(), WithCount(3), WithPalette([]string{"#123456"}), WithSpeed(2))

	if e.Len() != 3 {
		t.Fatalf("expected 3 particles, got %d", e.Len())
	}
	for _, p := range e.Particles() {
		if p.Color != "#123456" {
			t.Errorf("unexpected color %q", p.Color)
		}
	}
	pi := math.Pi
	if got, want := e.Period(), time.Duration(pi*float64(time.Second)); got != want {
		t.Errorf("period = %v, want %v", got, want)
	}
}

func TestNew_EmptyViewport(t *testing.T) {
	e := New(0, -5, seeded())
	for _, p := range e.Particles() {
		if p.Origin != (Point{}) {
			t.Errorf("expected origin at zero, got %+v", p.Origin)
		}
	}
}

func TestNew_DeterministicWithSeed(t *testing.T) {
	a := New(80, 24, seeded())
	b := New(80, 24, seeded())
	if diff := cmp.Diff(a.Particles(), b.Particles()); diff != "" {
		t.Errorf("same seed, different particles (-a +b):\n%s", diff)
	}
}

func TestDisplacement_Bounded(t *testing.T) {
	e := New(80, 24, seeded(), WithAmplitude(10, 5))
	for id := 0; id < e.Len(); id++ {
		for ms := 0; ms < 20000; ms += 37 {
			d := e.Displacement(id, time.Duration(ms)*time.Millisecond)
			if math.Abs(d.X) > 10+1e-9 || math.Abs(d.Y) > 5+1e-9 {
				t.Fatalf("particle %d at %dms out of bounds: %+v", id, ms, d)
			}
		}
	}
}

func TestDisplacement_Periodic(t *testing.T) {
	e := New(80, 24, seeded())
	period := e.Period()

	for _, tt := range []time.Duration{0, 250 * time.Millisecond, 3 * time.Second, 42 * time.Second} {
		for id := 0; id < e.Len(); id++ {
			a := e.Displacement(id, tt)
			b := e.Displacement(id, tt+period)
			if math.Abs(a.X-b.X) > 1e-6 || math.Abs(a.Y-b.Y) > 1e-6 {
				t.Errorf("particle %d not periodic at %v: %+v vs %+v", id, tt, a, b)
			}
		}
	}
}

func TestDisplacement_PhaseOffsetByID(t *testing.T) {
	e := New(80, 24, seeded())
	if e.Displacement(0, 0) == e.Displacement(1, 0) {
		t.Error("particles 0 and 1 share a phase")
	}
	// sin(0)=0, cos(0)=1 for particle 0 at t=0.
	d := e.Displacement(0, 0)
	if math.Abs(d.X) > 1e-9 || math.Abs(d.Y-DefaultAmplitudeY) > 1e-9 {
		t.Errorf("unexpected displacement %+v", d)
	}
}

func TestFrame_OriginsImmutable(t *testing.T) {
	e := New(80, 24, seeded())
	before := e.Particles()

	for ms := 0; ms < 5000; ms += 100 {
		frame := e.Frame(time.Duration(ms) * time.Millisecond)
		for i, p := range frame {
			want := e.Position(before[i], time.Duration(ms)*time.Millisecond)
			if p.Pos != want {
				t.Fatalf("frame position mismatch for %d", i)
			}
		}
	}

	got := e.Particles()
	got[0].Origin.X = -1
	if diff := cmp.Diff(before, e.Particles()); diff != "" {
		t.Errorf("origins changed (-before +after):\n%s", diff)
	}
}
