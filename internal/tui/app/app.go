// Package app provides the main TUI application that wires the flow to its
// views.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/tui"
	"github.com/underground-music/intake/internal/tui/commands"
	"github.com/underground-music/intake/internal/tui/views"
)

const maxBoxWidth = 72

// App is the main TUI application.
type App struct {
	model *tui.Model
	keys  tui.KeyMap
	help  help.Model

	// Screen of the step last rendered; rebuilt when the flow moves.
	step   intake.Step
	screen views.Screen

	info      views.InfoModel
	infoShown bool
}

// New creates an App for cfg. A nil logger disables the journal.
func New(cfg *config.Config, logger *log.Logger) *App {
	a := &App{
		model: tui.NewModel(cfg, logger),
		keys:  tui.DefaultKeyMap,
		help:  help.New(),
	}
	a.step = a.model.Flow.Step()
	a.screen = views.For(a.env(), a.contentWidth())
	return a
}

// Model exposes the shared state.
func (a *App) Model() *tui.Model { return a.model }

// Screen returns the view of the current step.
func (a *App) Screen() views.Screen { return a.screen }

func (a *App) env() views.Env {
	return views.Env{
		Flow:     a.model.Flow,
		Composer: a.model.Composer,
		Dispatch: a.dispatch,
		Copy:     a.copyLink,
		Keys:     a.keys,
	}
}

// Init journals the session start and starts the first screen.
func (a *App) Init() tea.Cmd {
	a.model.Recorder.Start()
	return a.screen.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		a.help.Width = msg.Width
		a.screen.SetWidth(a.contentWidth())
		if a.infoShown {
			a.info.SetWidth(a.contentWidth())
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.CtrlC):
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, commands.CtrlCTimeoutCmd()

		case key.Matches(msg, a.keys.Info):
			return a, a.apply(intake.ToggleInfo{})

		case key.Matches(msg, a.keys.Back):
			if a.model.Flow.InfoVisible() {
				return a, a.apply(intake.ToggleInfo{})
			}
			return a, a.apply(intake.Retreat{})

		case key.Matches(msg, a.keys.Reset):
			return a, a.apply(intake.Reset{})
		}
		if a.model.Flow.InfoVisible() {
			return a, nil
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.AutoAdvanceMsg:
		return a, a.apply(intake.AutoAdvance{Token: msg.Token})

	case tui.HandoffDoneMsg:
		a.handoffDone(msg)
		return a, nil
	}

	screen, cmd := a.screen.Update(msg)
	a.screen = screen
	return a, tea.Batch(cmd, a.sync())
}

// apply dispatches e outside a screen and refreshes the view.
func (a *App) apply(e intake.Event) tea.Cmd {
	cmd := a.dispatch(e)
	return tea.Batch(cmd, a.sync())
}

// dispatch feeds e to the flow and turns the effect into a command. It does
// not touch the screen; screens call it from their own Update.
func (a *App) dispatch(e intake.Event) tea.Cmd {
	switch eff := a.model.Flow.Dispatch(e).(type) {
	case intake.ScheduleAdvance:
		return commands.AutoAdvanceCmd(eff.Token, eff.Delay)
	case intake.Handoff:
		a.model.SetStatus("Abriendo WhatsApp…")
		return commands.OpenLinkCmd(a.model.Link())
	}
	return nil
}

func (a *App) copyLink() tea.Cmd {
	return commands.CopyLinkCmd(a.model.Link())
}

// sync rebuilds the screen when the flow changed step and tracks the info
// panel.
func (a *App) sync() tea.Cmd {
	visible := a.model.Flow.InfoVisible()
	if visible && !a.infoShown {
		a.info = views.NewInfoModel(a.model.Cfg, a.contentWidth())
	}
	a.infoShown = visible

	if a.model.Flow.Step() == a.step {
		return nil
	}
	a.step = a.model.Flow.Step()
	a.screen = views.For(a.env(), a.contentWidth())
	if _, ok := a.step.(intake.Summary); !ok {
		a.model.ClearStatus()
	}
	return a.screen.Init()
}

func (a *App) handoffDone(msg tui.HandoffDoneMsg) {
	switch {
	case msg.Err != nil && msg.Action == tui.ActionOpen:
		a.model.SetError(fmt.Sprintf("No se pudo abrir el navegador (%v). Enlace: %s", msg.Err, msg.URL))
	case msg.Err != nil:
		a.model.SetError(fmt.Sprintf("No se pudo copiar el enlace: %v", msg.Err))
	case msg.Action == tui.ActionCopy:
		a.model.SetStatus("Enlace copiado al portapapeles")
	default:
		a.model.SetStatus("Mensaje listo en WhatsApp")
	}
}

func (a *App) contentWidth() int {
	w := maxBoxWidth
	if a.model.Width-4 < w {
		w = a.model.Width - 4
	}
	return max(w, 24)
}

// View renders the current application state.
func (a *App) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render(a.model.Cfg.School.Name) +
		tui.DimStyle.Render(" · Escuela de Música y Salas de Ensayo")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(progress(a.model.Flow.Step()))
	b.WriteString("\n\n")

	keys := a.keys.Global()
	if a.model.Flow.InfoVisible() {
		b.WriteString(a.info.View())
		keys = []key.Binding{a.keys.Info, a.keys.CtrlC}
	} else {
		b.WriteString(a.screen.View())
		keys = append(a.screen.Keys(), keys...)
	}

	boxed := tui.BoxStyle.Width(a.contentWidth()).Render(b.String())

	var footer []string
	if a.model.Status != "" {
		style := tui.SuccessStyle
		if a.model.StatusErr {
			style = tui.ErrorStyle
		}
		footer = append(footer, style.Width(a.contentWidth()).Render(a.model.Status))
	}
	if a.model.CtrlCPending {
		footer = append(footer, tui.WarningStyle.Render("Press Ctrl+C again to exit"))
	}
	footer = append(footer, a.help.ShortHelpView(keys))

	out := lipgloss.JoinVertical(lipgloss.Left, append([]string{boxed}, footer...)...)

	// Center vertically if there's space
	if h := lipgloss.Height(out); a.model.Height > h {
		if padding := (a.model.Height - h) / 3; padding > 0 {
			out = strings.Repeat("\n", padding) + out
		}
	}
	return out
}

var stepOrder = []string{
	intake.ChooseClassType{}.Name(),
	intake.CollectIdentity{}.Name(),
	intake.ChooseRecipient{}.Name(),
	intake.ParticipantDetails{}.Name(),
	intake.PickInstruments{}.Name(),
	intake.PickTimes{}.Name(),
	intake.PickWeekdays{}.Name(),
	intake.Summary{}.Name(),
}

// progress renders one dot per main step, filled up to s. Add-person steps
// count as the summary.
func progress(s intake.Step) string {
	current := len(stepOrder) - 1
	for i, name := range stepOrder {
		if name == s.Name() {
			current = i
		}
	}
	if ref, ok := intake.RefOf(s); ok && ref.Draft {
		current = len(stepOrder) - 1
	}

	var b strings.Builder
	for i := range stepOrder {
		if i <= current {
			b.WriteString(tui.ProgressFullStyle.Render("●"))
		} else {
			b.WriteString(tui.ProgressEmptyStyle.Render("○"))
		}
		if i < len(stepOrder)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
