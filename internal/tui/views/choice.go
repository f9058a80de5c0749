package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/tui"
)

// Choice is one option of a ChoiceModel.
type Choice struct {
	Label  string
	Detail string
	// Chosen reports whether the flow already holds this option; nil means
	// never.
	Chosen func() bool
	Do     func() tea.Cmd
}

// ChoiceModel is a single-select screen: class type, recipient and the
// add-person prompt.
type ChoiceModel struct {
	env      Env
	title    string
	subtitle string
	choices  []Choice
	cursor   int
	width    int
}

func (c Choice) chosen() bool { return c.Chosen != nil && c.Chosen() }

// NewChoiceModel creates a ChoiceModel with the cursor on the chosen option.
func NewChoiceModel(env Env, title, subtitle string, choices []Choice) *ChoiceModel {
	m := &ChoiceModel{env: env, title: title, subtitle: subtitle, choices: choices}
	for i, c := range choices {
		if c.chosen() {
			m.cursor = i
		}
	}
	return m
}

// NewClassTypeChoice lists the catalog's class options with schedule and
// price.
func NewClassTypeChoice(env Env) *ChoiceModel {
	st := env.Flow.State()
	var choices []Choice
	for _, o := range env.Flow.Catalog().Options() {
		choices = append(choices, Choice{
			Label:  o.Title,
			Detail: o.Schedule + " · " + o.PriceText(),
			Chosen: func() bool { return st.ClassType == o.Type },
			Do:     env.send(intake.SelectClassType{Type: o.Type}),
		})
	}
	return NewChoiceModel(env, "Elegí tu modalidad de clase:", "", choices)
}

// NewRecipientChoice asks who the classes are for.
func NewRecipientChoice(env Env) *ChoiceModel {
	st := env.Flow.State()
	return NewChoiceModel(env, "¿Las clases son para vos o para otra persona?", "", []Choice{
		{
			Label:  "🙋 Para mí",
			Chosen: func() bool { return st.ForSelf == intake.ForSelfYes },
			Do:     env.send(intake.SelectRecipient{ForSelf: true}),
		},
		{
			Label:  "👤 Para otra persona",
			Chosen: func() bool { return st.ForSelf == intake.ForSelfNo },
			Do:     env.send(intake.SelectRecipient{ForSelf: false}),
		},
	})
}

// NewAddPersonChoice offers adding a participant after the first one.
func NewAddPersonChoice(env Env) *ChoiceModel {
	return NewChoiceModel(env, "¿Querés agregar otra persona?", "", []Choice{
		{Label: "Agregar otra persona al mismo grupo", Detail: "Mismos instrumentos, horarios y días que el grupo", Do: env.send(intake.AddSameGroup{})},
		{Label: "Agregar otra persona a otro grupo", Do: env.send(intake.AddDifferentGroup{})},
		{Label: "No, continuar", Do: env.send(intake.DeclineAdd{})},
	})
}

// Init returns the initial command for the choice view.
func (m *ChoiceModel) Init() tea.Cmd { return nil }

// Update handles messages for the choice view.
func (m *ChoiceModel) Update(msg tea.Msg) (Screen, tea.Cmd) {
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
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.env.Keys.Enter), key.Matches(keyMsg, m.env.Keys.Toggle):
		if len(m.choices) > 0 {
			return m, m.choices[m.cursor].Do()
		}
	}
	return m, nil
}

// Cursor returns the highlighted option index.
func (m *ChoiceModel) Cursor() int { return m.cursor }

// View renders the choice view.
func (m *ChoiceModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.title))
	b.WriteString("\n")
	if m.subtitle != "" {
		b.WriteString(tui.DimStyle.Render(m.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, c := range m.choices {
		label := c.Label
		if c.chosen() {
			label += " ✓"
		}
		if i == m.cursor {
			b.WriteString("› " + tui.SelectedStyle.Render(label))
		} else {
			b.WriteString("  " + tui.OptionStyle.Render(label))
		}
		b.WriteString("\n")
		if c.Detail != "" {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(tui.DimStyle.Render(c.Detail)))
			b.WriteString("\n")
		}
	}

	if m.env.Flow.AdvancePending() {
		b.WriteString("\n")
		b.WriteString(tui.SuccessStyle.Render("…"))
	}
	b.WriteString("\n")
	b.WriteString(hints("↑↓", "Elegir", "Enter", "Confirmar"))
	return b.String()
}

// Keys lists the choice view bindings.
func (m *ChoiceModel) Keys() []key.Binding {
	return []key.Binding{m.env.Keys.Up, m.env.Keys.Down, m.env.Keys.Enter}
}

// SetWidth records the available width.
func (m *ChoiceModel) SetWidth(width int) { m.width = width }
