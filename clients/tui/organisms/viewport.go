package organisms

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ListViewport is a scrollable list of pre-rendered rows.
type ListViewport struct {
	viewport viewport.Model
	rows     []string
	width    int
	height   int
}

// NewListViewport creates an empty list viewport.
func NewListViewport(width, height int) ListViewport {
	vp := viewport.New(width, height)
	vp.SetContent("")
	// Keys belong to the inputs; scrolling is driven by PageUp/PageDown in
	// the root model.
	vp.KeyMap = viewport.KeyMap{}
	vp.MouseWheelEnabled = false
	return ListViewport{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetSize updates the viewport dimensions.
func (o *ListViewport) SetSize(width, height int) {
	o.width = width
	o.height = max(height, 1)
	o.viewport.Width = width
	o.viewport.Height = o.height
	o.refresh()
}

// SetRows replaces the rows, keeping the scroll position when possible.
func (o *ListViewport) SetRows(rows []string) {
	o.rows = rows
	o.refresh()
}

// Top scrolls back to the first row.
func (o *ListViewport) Top() {
	o.viewport.GotoTop()
}

// Len returns the number of rows.
func (o *ListViewport) Len() int {
	return len(o.rows)
}

// PageUp scrolls up by one page.
func (o *ListViewport) PageUp() {
	o.viewport.PageUp()
}

// PageDown scrolls down by one page.
func (o *ListViewport) PageDown() {
	o.viewport.PageDown()
}

func (o *ListViewport) refresh() {
	o.viewport.SetContent(strings.Join(o.rows, "\n"))
}

// Update handles viewport messages.
func (o ListViewport) Update(msg tea.Msg) (ListViewport, tea.Cmd) {
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd
}

// View renders the visible rows.
func (o ListViewport) View() string {
	return o.viewport.View()
}
