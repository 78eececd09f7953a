package organisms

// Focus is the widget receiving keys.
type Focus int

const (
	FocusMessage  Focus = iota
	FocusFeedback       // feedback form, only while a suggestion is shown
)

// Panel is the list shown below the suggestion.
type Panel int

const (
	PanelHistory Panel = iota
	PanelAnalytics
	PanelEvents
)

func (p Panel) String() string {
	switch p {
	case PanelAnalytics:
		return "analytics"
	case PanelEvents:
		return "events"
	default:
		return "history"
	}
}
