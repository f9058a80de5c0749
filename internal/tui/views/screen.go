// Package views provides TUI view components for the intake flow.
package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/message"
	"github.com/underground-music/intake/internal/tui"
)

// Env connects a screen to the flow it renders.
type Env struct {
	Flow     *intake.Flow
	Composer message.Composer
	// Dispatch applies an event and returns the command for its effect.
	Dispatch func(intake.Event) tea.Cmd
	// Copy copies the handoff link.
	Copy func() tea.Cmd
	Keys tui.KeyMap
}

func (e Env) send(ev intake.Event) func() tea.Cmd {
	return func() tea.Cmd { return e.Dispatch(ev) }
}

// Screen is the view of one flow step.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	// Keys lists the bindings shown in the help footer.
	Keys() []key.Binding
	SetWidth(width int)
}

// For builds the screen for the flow's current step.
func For(env Env, width int) Screen {
	var s Screen
	switch step := env.Flow.Step().(type) {
	case intake.ChooseClassType:
		s = NewClassTypeChoice(env)
	case intake.CollectIdentity:
		s = NewIdentityForm(env)
	case intake.ChooseRecipient:
		s = NewRecipientChoice(env)
	case intake.ParticipantDetails:
		s = NewDetailsForm(env, step.Ref)
	case intake.DraftDetails:
		s = NewDraftForm(env)
	case intake.PickInstruments:
		s = NewInstrumentChecklist(env)
	case intake.PickTimes:
		s = NewTimeChecklist(env)
	case intake.PickWeekdays:
		s = NewWeekdayChecklist(env)
	case intake.AddPersonPrompt:
		s = NewAddPersonChoice(env)
	case intake.Summary:
		s = NewSummary(env)
	default:
		panic(fmt.Sprintf("views: no screen for step %s", step.Name()))
	}
	s.SetWidth(width)
	return s
}

func hints(pairs ...string) string {
	var out string
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += " · "
		}
		out += pairs[i] + ": " + pairs[i+1]
	}
	return tui.DimStyle.Render(out)
}
