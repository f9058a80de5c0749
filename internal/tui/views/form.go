package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/message"
	"github.com/underground-music/intake/internal/tui"
)

// FormField binds a text input to a flow field.
type FormField struct {
	Field       intake.Field
	Placeholder string
	CharLimit   int
	Get         func() string
	Set         func(string) intake.Event
}

// FormModel edits the text fields of a step. Every keystroke is applied to
// the flow, and the input shows the flow's value back.
type FormModel struct {
	env      Env
	title    string
	subtitle string
	notice   func() string
	fields   []FormField
	inputs   []textinput.Model
	focus    int
	width    int
}

// NewFormModel creates a FormModel focused on the first empty field.
func NewFormModel(env Env, title, subtitle string, fields []FormField) *FormModel {
	m := &FormModel{env: env, title: title, subtitle: subtitle, fields: fields}
	m.focus = -1
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = f.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 80
		}
		ti.SetValue(f.Get())
		ti.CursorEnd()
		m.inputs = append(m.inputs, ti)
		if m.focus < 0 && strings.TrimSpace(f.Get()) == "" {
			m.focus = i
		}
	}
	if m.focus < 0 {
		m.focus = 0
	}
	if len(m.inputs) > 0 {
		m.inputs[m.focus].Focus()
	}
	return m
}

func participantField(env Env, field intake.Field, placeholder string) FormField {
	f := FormField{Field: field, Placeholder: placeholder}
	active := func() *intake.Participant { return env.Flow.Active() }
	switch field {
	case intake.FieldName:
		f.Get = func() string {
			if p := active(); p != nil {
				return p.Name
			}
			return ""
		}
		f.Set = func(v string) intake.Event { return intake.SetName{Value: v} }
	case intake.FieldAge:
		f.CharLimit = 3
		f.Get = func() string {
			if p := active(); p != nil {
				return p.Age
			}
			return ""
		}
		f.Set = func(v string) intake.Event { return intake.SetAge{Value: v} }
	}
	return f
}

// NewIdentityForm asks for the contact, or for guardian and child.
func NewIdentityForm(env Env) *FormModel {
	st := env.Flow.State()
	if o, ok := env.Flow.Option(); ok && o.Guardian {
		return NewFormModel(env, "Datos para la inscripción 📝", o.Title, []FormField{
			{
				Field:       intake.FieldGuardianName,
				Placeholder: "Tu nombre (padre/madre/tutor)",
				Get:         func() string { return st.Guardian.Name },
				Set:         func(v string) intake.Event { return intake.SetGuardianName{Value: v} },
			},
			{
				Field:       intake.FieldChildName,
				Placeholder: "Nombre del niño/a",
				Get:         func() string { return st.Guardian.ChildName },
				Set:         func(v string) intake.Event { return intake.SetChildName{Value: v} },
			},
			{
				Field:       intake.FieldChildAge,
				Placeholder: "Edad (4 a 8 años)",
				CharLimit:   2,
				Get:         func() string { return st.Guardian.ChildAge },
				Set:         func(v string) intake.Event { return intake.SetChildAge{Value: v} },
			},
		})
	}
	return NewFormModel(env, "¿Cómo te llamás? 😊", "", []FormField{{
		Field:       intake.FieldMainName,
		Placeholder: "Escribí tu nombre acá",
		Get:         func() string { return st.MainName },
		Set:         func(v string) intake.Event { return intake.SetMainName{Value: v} },
	}})
}

// NewDetailsForm asks for a participant's name and age. The name is omitted
// when the contact enrolls themselves.
func NewDetailsForm(env Env, ref intake.Ref) *FormModel {
	st := env.Flow.State()
	title := "Datos del estudiante"
	switch {
	case ref.Draft:
		title = "Datos de la nueva persona"
	case st.ForSelf == intake.ForSelfYes && ref.Index == 0 && st.Roster.Len() == 1:
		title = "¿Cuál es tu edad?"
	}

	var fields []FormField
	if env.Flow.NameRequired() {
		fields = append(fields, participantField(env, intake.FieldName, "Nombre de la persona"))
	}
	fields = append(fields, participantField(env, intake.FieldAge, "Edad"))
	m := NewFormModel(env, title, "", fields)
	// The advisory follows the age as it is typed.
	m.notice = func() string {
		if !env.Flow.Advisory() {
			return ""
		}
		return message.Advisory(env.Flow)
	}
	return m
}

// NewDraftForm asks for the name and age of a same-group participant.
func NewDraftForm(env Env) *FormModel {
	return NewFormModel(env, "Datos de la nueva persona", "Mismos instrumentos, horarios y días que el grupo", []FormField{
		participantField(env, intake.FieldName, "Nombre de la persona"),
		participantField(env, intake.FieldAge, "Edad"),
	})
}

// Init starts the cursor blinking.
func (m *FormModel) Init() tea.Cmd { return textinput.Blink }

// Update handles messages for the form view.
func (m *FormModel) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.env.Keys.Next), key.Matches(keyMsg, m.env.Keys.Down):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(keyMsg, m.env.Keys.Up):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(keyMsg, m.env.Keys.Enter):
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.env.Dispatch(intake.Advance{})
		}
	}
	if len(m.inputs) == 0 {
		return m, nil
	}

	var cmds []tea.Cmd
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	cmds = append(cmds, cmd)

	if after := m.inputs[m.focus].Value(); after != before {
		f := m.fields[m.focus]
		cmds = append(cmds, m.env.Dispatch(f.Set(after)))
		if got := f.Get(); got != after {
			m.inputs[m.focus].SetValue(got)
			m.inputs[m.focus].CursorEnd()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	if i < 0 || i >= len(m.inputs) || i == m.focus {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *FormModel) noticeText() string {
	if m.notice == nil {
		return ""
	}
	return m.notice()
}

// Focus returns the index of the focused field.
func (m *FormModel) Focus() int { return m.focus }

// Fields lists the flow fields the form edits.
func (m *FormModel) Fields() []intake.Field {
	out := make([]intake.Field, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Field
	}
	return out
}

// View renders the form view.
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.title))
	b.WriteString("\n")
	if m.subtitle != "" {
		b.WriteString(tui.DimStyle.Render(m.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if notice := m.noticeText(); notice != "" {
		b.WriteString(tui.WarningStyle.Width(m.textWidth()).Render(notice))
		b.WriteString("\n\n")
	}

	for i, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
		if f := m.fields[i].Field; m.env.Flow.HasError(f) {
			b.WriteString(tui.ErrorStyle.Render(message.FieldError(f)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(hints("Enter", message.ForwardLabel(m.env.Flow.Step()), "Tab", "Campo siguiente", "Esc", "Volver"))
	return b.String()
}

// Keys lists the form view bindings.
func (m *FormModel) Keys() []key.Binding {
	return []key.Binding{m.env.Keys.Next, m.env.Keys.Enter}
}

// SetWidth sizes the inputs to width.
func (m *FormModel) SetWidth(width int) {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = m.textWidth()
	}
}

func (m *FormModel) textWidth() int {
	if w := m.width - 12; w > 20 {
		return w
	}
	return 20
}
