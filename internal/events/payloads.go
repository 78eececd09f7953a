package events

import "time"

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// =============================================================================
// FEEDBACK EVENTS
// =============================================================================

// FeedbackAckPayload is the one-shot acknowledgment of a feedback submission.
// It is deliberately separate from the controller's shared error text.
type FeedbackAckPayload struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

func (FeedbackAckPayload) EventType() EventType { return EventFeedbackAck }

// =============================================================================
// OPERATION EVENTS
// =============================================================================

type OperationPhase string

const (
	PhaseStarted   OperationPhase = "started"
	PhaseSucceeded OperationPhase = "succeeded"
	PhaseFailed    OperationPhase = "failed"
)

type OperationPayload struct {
	Op       string         `json:"op"`
	Phase    OperationPhase `json:"phase"`
	Trigger  string         `json:"trigger,omitempty"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration,omitempty"`
}

func (OperationPayload) EventType() EventType { return EventOperation }

// =============================================================================
// SERVICE EVENTS
// =============================================================================

// ServiceStatusPayload reports a change in the service's liveness.
type ServiceStatusPayload struct {
	URL    string `json:"url"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (ServiceStatusPayload) EventType() EventType { return EventServiceStatus }

// =============================================================================
// TYPED PAYLOAD EXTRACTORS
// =============================================================================

// ExtractPayload returns the event payload as T.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	p, ok := e.Payload.(T)
	return p, ok
}

func GetFeedbackAckPayload(e Event) (FeedbackAckPayload, bool) {
	return ExtractPayload[FeedbackAckPayload](e)
}

func GetOperationPayload(e Event) (OperationPayload, bool) {
	return ExtractPayload[OperationPayload](e)
}

func GetServiceStatusPayload(e Event) (ServiceStatusPayload, bool) {
	return ExtractPayload[ServiceStatusPayload](e)
}
