package tui

import (
	"github.com/google/uuid"

	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/message"
)

// Model is the shared TUI state: one intake flow and what the screens need
// around it.
type Model struct {
	// Configuration
	Cfg      *config.Config
	Composer message.Composer

	// Flow being driven and its journal
	Flow     *intake.Flow
	Recorder *log.Recorder

	// Status line
	Status    string
	StatusErr bool

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a Model with a fresh flow. A nil logger disables the
// journal.
func NewModel(cfg *config.Config, logger *log.Logger) *Model {
	cat := cfg.Catalog()
	m := &Model{
		Cfg:      cfg,
		Composer: message.Composer{School: cfg.School.Name, Catalog: cat},
		Flow: intake.NewFlow(intake.Options{
			Catalog:     cat,
			AutoAdvance: cfg.Flow.AutoAdvance(),
			AdvisoryAge: cfg.Flow.KidsAdvisoryAge,
		}),

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
	m.Recorder = &log.Recorder{
		Logger:  logger,
		Session: uuid.NewString(),
		Channel: log.ChannelTerminal,
		OnError: func(err error) { m.SetError("journal: " + err.Error()) },
	}
	m.Flow.Observe(m.Recorder.Observe(m.Flow))
	return m
}

// Message composes the enrollment message for the current state.
func (m *Model) Message() string {
	return m.Composer.Compose(m.Flow.State())
}

// Link returns the handoff link carrying Message.
func (m *Model) Link() string {
	return message.Link(m.Cfg.Messaging.Domain, m.Cfg.Messaging.Contact, m.Message())
}

// SetStatus shows an informational status line.
func (m *Model) SetStatus(s string) {
	m.Status, m.StatusErr = s, false
}

// SetError shows an error in the status line.
func (m *Model) SetError(s string) {
	m.Status, m.StatusErr = s, true
}

// ClearStatus empties the status line.
func (m *Model) ClearStatus() {
	m.Status, m.StatusErr = "", false
}
