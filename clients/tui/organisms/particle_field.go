package organisms

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/emotai/internal/particles"
)

// ParticleField renders a particles.Engine into a band of terminal cells.
// Particles that drift outside the band are clipped.
type ParticleField struct {
	engine *particles.Engine
	start  time.Time
	now    time.Time
	width  int
	height int
	glyph  string
	styles map[string]lipgloss.Style
}

// NewParticleField animates engine from start.
func NewParticleField(engine *particles.Engine, start time.Time) ParticleField {
	f := ParticleField{
		engine: engine,
		start:  start,
		now:    start,
		glyph:  "•",
		styles: make(map[string]lipgloss.Style),
	}
	if engine != nil {
		for _, p := range engine.Particles() {
			if _, ok := f.styles[p.Color]; !ok {
				f.styles[p.Color] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
			}
		}
	}
	return f
}

// SetSize sets the band extent in cells.
func (f *ParticleField) SetSize(width, height int) {
	f.width, f.height = width, height
}

// Advance sets the instant to render.
func (f *ParticleField) Advance(now time.Time) {
	f.now = now
}

// Elapsed is the animation time being rendered.
func (f ParticleField) Elapsed() time.Duration {
	return f.now.Sub(f.start)
}

// Cells returns the occupied cells as row -> column -> color. When two
// particles share a cell the later id wins.
func (f ParticleField) Cells() map[int]map[int]string {
	cells := make(map[int]map[int]string)
	if f.engine == nil {
		return cells
	}
	for _, p := range f.engine.Frame(f.Elapsed()) {
		x, y := int(math.Floor(p.Pos.X)), int(math.Floor(p.Pos.Y))
		if x < 0 || y < 0 || x >= f.width || y >= f.height {
			continue
		}
		if cells[y] == nil {
			cells[y] = make(map[int]string)
		}
		cells[y][x] = p.Color
	}
	return cells
}

// View renders height lines of width cells.
func (f ParticleField) View() string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}
	cells := f.Cells()
	lines := make([]string, f.height)
	for y := range lines {
		row := cells[y]
		if len(row) == 0 {
			lines[y] = strings.Repeat(" ", f.width)
			continue
		}
		var sb strings.Builder
		for x := 0; x < f.width; x++ {
			if color, ok := row[x]; ok {
				sb.WriteString(f.styles[color].Render(f.glyph))
			} else {
				sb.WriteByte(' ')
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
