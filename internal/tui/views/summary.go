package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/message"
	"github.com/underground-music/intake/internal/tui"
)

// SummaryModel reviews the enrollment and offers the handoff.
type SummaryModel struct {
	env     Env
	actions *ChoiceModel
	width   int
}

// NewSummary creates the summary view.
func NewSummary(env Env) *SummaryModel {
	choices := []Choice{
		{Label: "Enviar por WhatsApp", Do: env.send(intake.Finish{})},
		{Label: "Copiar enlace", Do: env.Copy},
	}
	if env.Flow.CanAddPerson() {
		choices = append(choices,
			Choice{Label: "Agregar otra persona al mismo grupo", Do: env.send(intake.AddSameGroup{})},
			Choice{Label: "Agregar otra persona a otro grupo", Do: env.send(intake.AddDifferentGroup{})},
		)
	}
	return &SummaryModel{
		env:     env,
		actions: NewChoiceModel(env, "", "", choices),
	}
}

// Init returns the initial command for the summary view.
func (m *SummaryModel) Init() tea.Cmd { return nil }

// Update handles messages for the summary view.
func (m *SummaryModel) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.env.Keys.Open):
			return m, m.env.Dispatch(intake.Finish{})
		case key.Matches(keyMsg, m.env.Keys.Copy):
			return m, m.env.Copy()
		case key.Matches(keyMsg, m.env.Keys.Add):
			if m.env.Flow.CanAddPerson() {
				return m, m.env.Dispatch(intake.AddAnother{})
			}
			return m, nil
		}
	}
	_, cmd := m.actions.Update(msg)
	return m, cmd
}

// View renders the summary view.
func (m *SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("¡PERFECTO! 🎉"))
	b.WriteString("\n\n")
	b.WriteString(tui.LabelStyle.Render("Resumen de tu consulta:"))
	b.WriteString("\n\n")
	b.WriteString(renderReview(m.env.Composer.Review(m.env.Flow.State())))
	b.WriteString("\n")

	for i, c := range m.actions.choices {
		if i == m.actions.cursor {
			b.WriteString("› " + tui.SelectedStyle.Render(c.Label))
		} else {
			b.WriteString("  " + tui.OptionStyle.Render(c.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pairs := []string{"Enter", "Elegir", "o", "WhatsApp", "c", "Copiar"}
	if m.env.Flow.CanAddPerson() {
		pairs = append(pairs, "a", "Agregar")
	}
	b.WriteString(hints(pairs...))
	return b.String()
}

func renderReview(r message.Review) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(tui.LabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Nombre:", r.Contact)
	line("Tipo de clase:", r.ClassLabel)
	for _, p := range r.People {
		b.WriteString("\n")
		if p.Heading != "" {
			b.WriteString(tui.TitleStyle.Render(p.Heading))
			b.WriteString("\n")
		}
		line("Nombre:", p.Name)
		line("Edad:", p.Age+" años")
		if p.Guardian != "" {
			line("Tutor/Responsable:", p.Guardian)
		}
		line("Instrumentos:", p.Instruments)
		line("Horarios:", p.Times)
		line("Días:", p.Weekdays)
	}
	return b.String()
}

// Keys lists the summary view bindings.
func (m *SummaryModel) Keys() []key.Binding {
	keys := []key.Binding{m.env.Keys.Enter, m.env.Keys.Open, m.env.Keys.Copy}
	if m.env.Flow.CanAddPerson() {
		keys = append(keys, m.env.Keys.Add)
	}
	return keys
}

// SetWidth records the available width.
func (m *SummaryModel) SetWidth(width int) { m.width = width }
