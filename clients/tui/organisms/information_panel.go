package organisms

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar displays the service, the controller version, the operation in
// flight and the last outcome.
type StatusBar struct {
	service  string
	health   string
	version  uint64
	loading  bool
	lastOp   string
	panel    Panel
	width    int
	style    lipgloss.Style
	entries  int
	messages int
}

// NewStatusBar creates a status bar for the given service URL.
func NewStatusBar(service string, style lipgloss.Style) StatusBar {
	return StatusBar{service: service, style: style}
}

// SetVersion updates the displayed state version and loading flag.
func (p *StatusBar) SetVersion(v uint64, loading bool) { p.version = v; p.loading = loading }

// SetHealth updates the service liveness shown next to its URL.
func (p *StatusBar) SetHealth(status string) { p.health = status }

// SetLastOp updates the last operation line.
func (p *StatusBar) SetLastOp(line string) { p.lastOp = line }

// SetPanel updates the displayed panel.
func (p *StatusBar) SetPanel(panel Panel) { p.panel = panel }

// SetCounts updates the history and analytics counters.
func (p *StatusBar) SetCounts(historyEntries, messages int) {
	p.entries = historyEntries
	p.messages = messages
}

// SetWidth updates the rendering width.
func (p *StatusBar) SetWidth(w int) { p.width = w }

// LastOp returns the last operation line.
func (p *StatusBar) LastOp() string { return p.lastOp }

// View renders the status bar.
func (p StatusBar) View() string {
	state := "idle"
	if p.loading {
		state = "loading"
	}
	service := p.service
	if p.health != "" {
		service += " (" + p.health + ")"
	}
	bar := fmt.Sprintf(" %s | v%d | %s | %s:%d", service, p.version, state, p.panel, p.entries)
	if p.messages > 0 {
		bar += fmt.Sprintf(" | %d msgs", p.messages)
	}
	if p.lastOp != "" {
		bar += " | " + p.lastOp
	}
	return p.style.Width(p.width).MaxHeight(1).Render(bar)
}
