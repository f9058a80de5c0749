package tui

// AutoAdvanceMsg delivers a scheduled auto-advance back to the flow.
type AutoAdvanceMsg struct {
	Token uint64
}

// CtrlCResetMsg clears the pending exit confirmation.
type CtrlCResetMsg struct{}

// Handoff actions reported by HandoffDoneMsg.
const (
	ActionOpen = "open"
	ActionCopy = "copy"
)

// HandoffDoneMsg reports the outcome of opening or copying the link.
type HandoffDoneMsg struct {
	Action string
	URL    string
	Err    error
}
