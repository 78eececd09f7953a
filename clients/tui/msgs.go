package tui

import (
	"time"

	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/controller"
	"github.com/dohr-michael/emotai/internal/events"
)

// StateMsg carries a controller snapshot.
type StateMsg struct {
	State controller.State
}

// AckMsg carries a one-shot feedback acknowledgment.
type AckMsg struct {
	OK   bool
	Text string
}

// OperationMsg mirrors an operation lifecycle event for the status bar.
type OperationMsg struct {
	Op       string
	Phase    events.OperationPhase
	Trigger  string
	Error    string
	Duration time.Duration
}

// ServiceStatusMsg reports a change in the service's liveness.
type ServiceStatusMsg struct {
	Status string
	Error  string
}

// opDoneMsg is returned by the command that ran a controller operation.
type opDoneMsg struct {
	op  string
	err error
}

// frameMsg advances the particle animation.
type frameMsg time.Time

// noticeExpiredMsg hides the notice with the given sequence number.
type noticeExpiredMsg struct {
	seq int
}

// reloadedMsg reports the outcome of /reload.
type reloadedMsg struct {
	cfg *config.Config
	err error
}

// eventsMsg carries recent bus events for /events.
type eventsMsg struct {
	events []events.Event
}
