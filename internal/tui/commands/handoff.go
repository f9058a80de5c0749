// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/handoff"
	"github.com/underground-music/intake/internal/tui"
)

// Package-level so tests can stub them.
var (
	openURL  = handoff.Open
	copyText = handoff.Copy
)

// OpenLinkCmd opens url in the browser.
func OpenLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return tui.HandoffDoneMsg{Action: tui.ActionOpen, URL: url, Err: openURL(url)}
	}
}

// CopyLinkCmd copies url to the clipboard.
func CopyLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return tui.HandoffDoneMsg{Action: tui.ActionCopy, URL: url, Err: copyText(url)}
	}
}

// AutoAdvanceCmd delivers token back after delay.
func AutoAdvanceCmd(token uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return tui.AutoAdvanceMsg{Token: token}
	})
}

// CtrlCTimeoutCmd clears the exit confirmation after a second.
func CtrlCTimeoutCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tui.CtrlCResetMsg{}
	})
}
