package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/emotai/clients/tui/atoms"
	"github.com/dohr-michael/emotai/clients/tui/molecules"
	"github.com/dohr-michael/emotai/clients/tui/organisms"
	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/controller"
	"github.com/dohr-michael/emotai/internal/events"
	"github.com/dohr-michael/emotai/internal/particles"
)

const (
	noticeTTL      = 3 * time.Second
	eventsShown    = 30
	defaultFrame   = 100 * time.Millisecond
	minListHeight  = 3
	titleLine      = "EmotAI"
	subtitleLine   = "emoji suggestions for your messages"
	unknownCommand = "Unknown command: %s (try /help)"
)

const helpText = "/history  /analytics  /events  /rate <1-5>  /clear  /forget  /reload  /quit"

// Eraser deletes everything the service stored for this session.
type Eraser interface {
	DeleteUserData(ctx context.Context) error
}

// HealthMonitor publishes the service's liveness on the bus while running.
type HealthMonitor interface {
	Start(ctx context.Context)
	Stop()
}

// Options wires the model to its collaborators. Controller is required.
type Options struct {
	Controller    *controller.Controller
	Bus           *events.Bus
	Reloader      *config.Reloader
	Eraser        Eraser
	Health        HealthMonitor
	Particles     *particles.Engine
	FrameInterval time.Duration
	ServiceURL    string
	Logger        *slog.Logger
	Now           func() time.Time
}

// Model is the root bubbletea model.
// Layout: PARTICLES | TITLE | INPUT | STATUS LINE | RESULT | FEEDBACK | LIST | HELP | STATUS BAR
type Model struct {
	ctrl     *controller.Controller
	bus      *events.Bus
	reloader *config.Reloader
	eraser   Eraser
	log      *slog.Logger
	now      func() time.Time

	keys    keyMap
	help    help.Model
	input   molecules.MessageInput
	form    organisms.FeedbackForm
	list    organisms.ListViewport
	field   organisms.ParticleField
	status  organisms.StatusBar
	spinner atoms.Spinner
	styles  organisms.CardStyles

	state      controller.State
	focus      organisms.Focus
	panel      organisms.Panel
	notice     string
	noticeOK   bool
	noticeSeq  int
	eventRows  []string
	frameEvery time.Duration
	fieldRows  int
	width      int
	height     int
}

// New creates the root model. The initial state is the controller's
// current snapshot.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = defaultFrame
	}

	styles := organisms.CardStyles{
		Card:    CardStyle,
		Title:   TitleStyle,
		Accent:  AccentStyle,
		Error:   ErrorStyle,
		Muted:   MutedStyle,
		Success: SuccessStyle,
	}

	m := Model{
		ctrl:       opts.Controller,
		bus:        opts.Bus,
		reloader:   opts.Reloader,
		eraser:     opts.Eraser,
		log:        log,
		now:        now,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      molecules.NewMessageInput(),
		form:       organisms.NewFeedbackForm(FormStyle, AccentStyle, MutedStyle),
		list:       organisms.NewListViewport(80, minListHeight),
		field:      organisms.NewParticleField(opts.Particles, now()),
		status:     organisms.NewStatusBar(opts.ServiceURL, StatusBarStyle),
		spinner:    atoms.NewSpinner(ColorNeon, "Thinking..."),
		styles:     styles,
		frameEvery: frame,
	}
	m.applyState(opts.Controller.Snapshot())
	return m
}

// Init focuses the input, starts the spinner and the particle clock, and
// loads the history once.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		m.spinner.Tick,
		m.nextFrame(),
		m.runOp(controller.OpHistory, m.ctrl.RefreshHistory),
	)
}

// Update processes all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fieldRows = FieldHeight(msg.Height)
		m.field.SetSize(msg.Width, m.fieldRows)
		m.input.SetWidth(msg.Width)
		m.form.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case molecules.SubmitMsg:
		return m.handleSubmit(msg.Content)

	case organisms.FeedbackSubmitMsg:
		return m.handleFeedback(msg)

	case organisms.FeedbackChangedMsg:
		// Applied in keystroke order; a command per edit could land out of order.
		m.ctrl.SetFeedback(msg.Feedback)
		return m, nil

	case organisms.RatingChangedMsg:
		return m.rate(msg.Rating)

	case StateMsg:
		if msg.State.Version <= m.state.Version {
			return m, nil
		}
		m.applyState(msg.State)
		return m, nil

	case AckMsg:
		// Accepted feedback and deleted data both leave an empty form.
		if msg.OK {
			m.form.Clear()
		}
		return m.notify(msg.Text, msg.OK)

	case OperationMsg:
		m.status.SetLastOp(molecules.OpLine(string(msg.Phase), msg.Op, msg.Trigger,
			m.spinner.Model.View(), msg.Error, msg.Duration))
		return m, nil

	case ServiceStatusMsg:
		m.status.SetHealth(msg.Status)
		if msg.Error != "" {
			m.log.Debug("service unhealthy", "status", msg.Status, "error", msg.Error)
		}
		return m, nil

	case opDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, controller.ErrClosed) {
			m.log.Debug("operation returned error", "op", msg.op, "error", msg.err)
		}
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			return m.notify(fmt.Sprintf("Reload failed: %v", msg.err), false)
		}
		return m.notify("Configuration reloaded", true)

	case eventsMsg:
		rows := make([]string, 0, len(msg.events))
		for _, e := range msg.events {
			rows = append(rows, formatEvent(e))
		}
		m.eventRows = rows
		m.setPanel(organisms.PanelEvents)
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.layout()
		}
		return m, nil

	case frameMsg:
		m.field.Advance(time.Time(msg))
		return m, m.nextFrame()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.routeToFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.input.Reset()
		cmd := m.reset()
		return m, cmd

	case key.Matches(msg, m.keys.Focus):
		cmd := m.toggleFocus()
		return m, cmd

	case key.Matches(msg, m.keys.Panel):
		m.setPanel((m.panel + 1) % 3)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	return m.routeToFocused(msg)
}

func (m Model) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == organisms.FocusFeedback {
		m.form, cmd = m.form.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSubmit(content string) (tea.Model, tea.Cmd) {
	if trimmed := strings.TrimSpace(content); strings.HasPrefix(trimmed, "/") {
		m.input.Reset()
		return m.handleSlashCommand(trimmed)
	}
	if m.state.Loading {
		return m, nil
	}
	// Empty input still goes to the controller: it owns the validation message.
	return m, m.runOp(controller.OpSuggest, func(ctx context.Context) error {
		return m.ctrl.Suggest(ctx, content)
	})
}

func (m Model) handleFeedback(msg organisms.FeedbackSubmitMsg) (tea.Model, tea.Cmd) {
	message := m.state.Message
	if m.state.Loading || strings.TrimSpace(message) == "" {
		return m, nil
	}
	return m, m.runOp(controller.OpFeedback, func(ctx context.Context) error {
		return m.ctrl.SubmitFeedback(ctx, message, msg.Feedback, msg.Rating)
	})
}

func (m Model) handleSlashCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	command := parts[0]

	switch command {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		return m.notify(helpText, true)

	case "/clear":
		cmd := m.reset()
		return m, cmd

	case "/history":
		m.setPanel(organisms.PanelHistory)
		if m.state.Loading {
			return m, nil
		}
		return m, m.runOp(controller.OpHistory, m.ctrl.RefreshHistory)

	case "/analytics":
		m.setPanel(organisms.PanelAnalytics)
		if m.state.Loading {
			return m, nil
		}
		return m, m.runOp(controller.OpAnalytics, m.ctrl.RefreshAnalytics)

	case "/events":
		if m.bus == nil {
			return m.notify("No event bus attached", false)
		}
		bus := m.bus
		return m, func() tea.Msg { return eventsMsg{events: bus.History(eventsShown)} }

	case "/rate":
		if len(parts) != 2 {
			return m.notify("Usage: /rate <1-5>", false)
		}
		r, err := strconv.Atoi(parts[1])
		if err != nil {
			return m.notify("Usage: /rate <1-5>", false)
		}
		return m.rate(r)

	case "/reload":
		if m.reloader == nil {
			return m.notify("Reload is not available", false)
		}
		r := m.reloader
		return m, func() tea.Msg {
			cfg, err := r.Reload()
			return reloadedMsg{cfg: cfg, err: err}
		}

	case "/forget":
		if m.eraser == nil {
			return m.notify("Forget is not available", false)
		}
		eraser, ctrl := m.eraser, m.ctrl
		return m, func() tea.Msg {
			ctx := context.Background()
			if err := eraser.DeleteUserData(ctx); err != nil {
				return AckMsg{OK: false, Text: fmt.Sprintf("Failed to delete data: %v", err)}
			}
			ctrl.Reset()
			if err := ctrl.RefreshHistory(ctx); err != nil {
				return opDoneMsg{op: controller.OpHistory, err: err}
			}
			return AckMsg{OK: true, Text: "Your data was deleted"}
		}

	default:
		return m.notify(fmt.Sprintf(unknownCommand, command), false)
	}
}

func (m Model) rate(r int) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetRating(r); err != nil {
		return m.notify(err.Error(), false)
	}
	return m, nil
}

// notify shows a transient notice.
func (m Model) notify(text string, ok bool) (tea.Model, tea.Cmd) {
	cmd := m.showNotice(text, ok)
	return m, cmd
}

func (m *Model) reset() tea.Cmd {
	m.form.Clear()
	ctrl := m.ctrl
	return func() tea.Msg { ctrl.Reset(); return nil }
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == organisms.FocusFeedback {
		m.focus = organisms.FocusMessage
		m.form.Blur()
		return m.input.Focus()
	}
	if !m.state.HasResult() {
		return nil
	}
	m.focus = organisms.FocusFeedback
	m.input.Blur()
	return m.form.Focus()
}

func (m *Model) setPanel(p organisms.Panel) {
	m.panel = p
	m.status.SetPanel(p)
	m.refreshList()
	m.list.Top()
	m.layout()
}

// applyState adopts a newer snapshot and re-derives the gated widgets.
func (m *Model) applyState(s controller.State) {
	m.state = s
	m.input.SetEnabled(!s.Loading)
	m.form.SetEnabled(!s.Loading && strings.TrimSpace(s.Message) != "")
	m.form.SyncRating(s.Rating)
	if !s.HasResult() && m.focus == organisms.FocusFeedback {
		m.focus = organisms.FocusMessage
		m.form.Blur()
		m.input.Focus()
	}
	m.status.SetVersion(s.Version, s.Loading)
	m.status.SetCounts(len(s.History), s.Stats.MessageCount)
	m.refreshList()
	m.layout()
}

func (m *Model) refreshList() {
	switch m.panel {
	case organisms.PanelAnalytics:
		m.list.SetRows(organisms.AnalyticsRows(m.state.Analytics, m.state.Stats, m.styles))
	case organisms.PanelEvents:
		m.list.SetRows(m.eventRows)
	default:
		m.list.SetRows(organisms.HistoryRows(m.state.History, m.styles))
	}
}

func (m *Model) showNotice(text string, ok bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeOK = ok
	m.layout()
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m Model) runOp(op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// FieldHeight is the number of rows given to the particle band for a
// terminal of the given height.
func FieldHeight(termHeight int) int {
	return min(max(termHeight/5, 2), 6)
}

// layout gives the list whatever height the other sections leave.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	used := lipgloss.Height(m.top()) + lipgloss.Height(m.bottom()) + 1
	m.list.SetSize(m.width, max(m.height-used, minListHeight))
}

func (m Model) top() string {
	sections := []string{
		m.field.View(),
		TitleStyle.Render(titleLine) + "  " + MutedStyle.Render(subtitleLine),
		m.input.View(),
		m.statusLine(),
	}
	if m.state.HasResult() {
		sections = append(sections,
			organisms.ResultCard(m.state.Result, m.width, m.styles),
			m.form.View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) bottom() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.help.View(m.keys), m.status.View())
}

func (m Model) statusLine() string {
	switch {
	case m.notice != "":
		if m.noticeOK {
			return SuccessStyle.Render(m.notice)
		}
		return ErrorStyle.Render(m.notice)
	case m.state.Loading:
		return m.spinner.View()
	case m.state.Error != "":
		return organisms.ErrorLine(m.state.Error, m.styles)
	default:
		return ""
	}
}

// View renders the full TUI layout.
func (m Model) View() string {
	heading := AccentStyle.Render(panelTitle(m.panel))
	return lipgloss.JoinVertical(lipgloss.Left, m.top(), heading, m.list.View(), m.bottom())
}

func panelTitle(p organisms.Panel) string {
	switch p {
	case organisms.PanelAnalytics:
		return "Analytics"
	case organisms.PanelEvents:
		return "Recent events"
	default:
		return "Your History"
	}
}

func formatEvent(e events.Event) string {
	ts := e.Timestamp.Format("15:04:05.000")
	switch p := e.Payload.(type) {
	case events.OperationPayload:
		return fmt.Sprintf("%s %s", ts, molecules.OpLine(string(p.Phase), p.Op, p.Trigger, "…", p.Error, p.Duration))
	case events.FeedbackAckPayload:
		return fmt.Sprintf("%s ack %s", ts, p.Text)
	case events.ServiceStatusPayload:
		return fmt.Sprintf("%s service %s", ts, p.Status)
	case controller.StateChanged:
		return fmt.Sprintf("%s state v%d loading=%t", ts, p.State.Version, p.State.Loading)
	default:
		return fmt.Sprintf("%s %s", ts, e.Type)
	}
}
