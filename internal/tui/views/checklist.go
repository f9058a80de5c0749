package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/message"
	"github.com/underground-music/intake/internal/tui"
)

// ChecklistItem is one toggleable option.
type ChecklistItem struct {
	Label  string
	On     func() bool
	Toggle intake.Event
}

// ChecklistModel is a multi-select screen for instruments, times and days.
type ChecklistModel struct {
	env    Env
	title  string
	field  intake.Field
	items  []ChecklistItem
	cursor int
	width  int
}

type option interface {
	comparable
	OptionLabel() string
}

func checklistItems[T option](env Env, values []T, set func(*intake.Participant) intake.Set[T], toggle func(T) intake.Event) []ChecklistItem {
	items := make([]ChecklistItem, len(values))
	for i, v := range values {
		items[i] = ChecklistItem{
			Label: v.OptionLabel(),
			On: func() bool {
				p := env.Flow.Active()
				return p != nil && set(p).Has(v)
			},
			Toggle: toggle(v),
		}
	}
	return items
}

// NewInstrumentChecklist lists the instruments.
func NewInstrumentChecklist(env Env) *ChecklistModel {
	items := checklistItems(env, catalog.Instruments(),
		func(p *intake.Participant) intake.Set[catalog.Instrument] { return p.Instruments },
		func(v catalog.Instrument) intake.Event { return intake.ToggleInstrument{Instrument: v} })
	return &ChecklistModel{env: env, title: "¿Qué instrumento querés aprender? 🎸", field: intake.FieldInstruments, items: items}
}

// NewTimeChecklist lists the time bands.
func NewTimeChecklist(env Env) *ChecklistModel {
	items := checklistItems(env, catalog.TimePreferences(),
		func(p *intake.Participant) intake.Set[catalog.TimePreference] { return p.Times },
		func(v catalog.TimePreference) intake.Event { return intake.ToggleTime{Time: v} })
	return &ChecklistModel{env: env, title: "¿En qué horario preferís? ⏰", field: intake.FieldTimes, items: items}
}

// NewWeekdayChecklist lists the weekdays.
func NewWeekdayChecklist(env Env) *ChecklistModel {
	items := checklistItems(env, catalog.Weekdays(),
		func(p *intake.Participant) intake.Set[catalog.Weekday] { return p.Weekdays },
		func(v catalog.Weekday) intake.Event { return intake.ToggleWeekday{Weekday: v} })
	return &ChecklistModel{env: env, title: "¿Qué días tenés libres? 📅", field: intake.FieldWeekdays, items: items}
}

// Init returns the initial command for the checklist view.
func (m *ChecklistModel) Init() tea.Cmd { return nil }

// Update handles messages for the checklist view.
func (m *ChecklistModel) Update(msg tea.Msg) (Screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.env.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.env.Keys.Down), key.Matches(keyMsg, m.env.Keys.Next):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.env.Keys.Toggle):
		return m, m.env.Dispatch(m.items[m.cursor].Toggle)
	case key.Matches(keyMsg, m.env.Keys.Enter):
		return m, m.env.Dispatch(intake.Advance{})
	}
	return m, nil
}

// View renders the checklist view.
func (m *ChecklistModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Podés seleccionar varios"))
	b.WriteString("\n\n")

	for i, it := range m.items {
		line := tui.Checkbox(it.On()) + " " + it.Label
		if i == m.cursor {
			b.WriteString("› " + tui.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + tui.OptionStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.env.Flow.HasError(m.field) {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(message.FieldError(m.field)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hints("Espacio", "Marcar", "Enter", message.ForwardLabel(m.env.Flow.Step()), "Esc", "Volver"))
	return b.String()
}

// Keys lists the checklist view bindings.
func (m *ChecklistModel) Keys() []key.Binding {
	return []key.Binding{m.env.Keys.Up, m.env.Keys.Down, m.env.Keys.Toggle, m.env.Keys.Enter}
}

// SetWidth records the available width.
func (m *ChecklistModel) SetWidth(width int) { m.width = width }
