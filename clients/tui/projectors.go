package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/emotai/internal/controller"
	"github.com/dohr-michael/emotai/internal/events"
)

// Project converts a bus event into a typed tea.Msg.
// Returns nil for events that don't map to a TUI message.
func Project(e events.Event) tea.Msg {
	switch e.Type {
	case events.EventStateChanged:
		return projectState(e)
	case events.EventFeedbackAck:
		return projectAck(e)
	case events.EventOperation:
		return projectOperation(e)
	case events.EventServiceStatus:
		return projectServiceStatus(e)
	default:
		return nil
	}
}

func projectState(e events.Event) tea.Msg {
	p, ok := controller.GetStateChanged(e)
	if !ok {
		return nil
	}
	return StateMsg{State: p.State}
}

func projectAck(e events.Event) tea.Msg {
	p, ok := events.GetFeedbackAckPayload(e)
	if !ok {
		return nil
	}
	return AckMsg{OK: p.OK, Text: p.Text}
}

func projectOperation(e events.Event) tea.Msg {
	p, ok := events.GetOperationPayload(e)
	if !ok {
		return nil
	}
	return OperationMsg{
		Op:       p.Op,
		Phase:    p.Phase,
		Trigger:  p.Trigger,
		Error:    p.Error,
		Duration: p.Duration,
	}
}

func projectServiceStatus(e events.Event) tea.Msg {
	p, ok := events.GetServiceStatusPayload(e)
	if !ok {
		return nil
	}
	return ServiceStatusMsg{Status: p.Status, Error: p.Error}
}
