package telegram

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/info"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/message"
)

// Screen is one chat message: text and its inline keyboard.
type Screen struct {
	Text   string
	Markup *models.InlineKeyboardMarkup
}

// Renderer turns a flow into chat screens.
type Renderer struct {
	Cfg      *config.Config
	Composer message.Composer
}

type keyboard [][]models.InlineKeyboardButton

func button(text string, e intake.Event) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: CallbackData(e)}
}

func (k keyboard) row(buttons ...models.InlineKeyboardButton) keyboard {
	return append(k, buttons)
}

func (k keyboard) markup() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: k}
}

// Render builds the screen of the flow's current step.
func (r Renderer) Render(f *intake.Flow) Screen {
	if f.InfoVisible() {
		return r.infoScreen()
	}

	var b strings.Builder
	var kb keyboard
	step := f.Step()
	st := f.State()

	switch s := step.(type) {
	case intake.ChooseClassType:
		fmt.Fprintf(&b, "¡Hola! Bienvenido/a a %s 🎶\n\nElegí tu modalidad de clase:\n", r.Cfg.School.Name)
		for _, o := range f.Catalog().Options() {
			fmt.Fprintf(&b, "\n• %s\n  %s · %s\n", o.Title, o.Schedule, o.PriceText())
			kb = kb.row(button(o.Title, intake.SelectClassType{Type: o.Type}))
		}

	case intake.CollectIdentity:
		o, _ := f.Option()
		if o.Guardian {
			b.WriteString("Datos para la inscripción 📝\n\n")
			writeValue(&b, intake.FieldGuardianName, st.Guardian.Name)
			writeValue(&b, intake.FieldChildName, st.Guardian.ChildName)
			writeValue(&b, intake.FieldChildAge, st.Guardian.ChildAge)
		} else {
			b.WriteString("¿Cómo te llamás? 😊\n\n")
			writeValue(&b, intake.FieldMainName, st.MainName)
		}
		writeAsk(&b, f)
		kb = kb.row(button(message.ForwardLabel(step)+" ›", intake.Advance{}))

	case intake.ChooseRecipient:
		b.WriteString("¿Las clases son para vos o para otra persona?\n")
		kb = kb.row(
			button(mark(st.ForSelf == intake.ForSelfYes)+"🙋 Para mí", intake.SelectRecipient{ForSelf: true}),
			button(mark(st.ForSelf == intake.ForSelfNo)+"👤 Para otra persona", intake.SelectRecipient{ForSelf: false}),
		)

	case intake.ParticipantDetails, intake.DraftDetails:
		ref, _ := intake.RefOf(s)
		switch {
		case ref.Draft:
			b.WriteString("Datos de la nueva persona\n")
			if _, ok := s.(intake.DraftDetails); ok {
				b.WriteString("Mismos instrumentos, horarios y días que el grupo\n")
			}
		default:
			b.WriteString("Datos del estudiante\n")
		}
		b.WriteString("\n")
		if f.Advisory() {
			b.WriteString(message.Advisory(f))
			b.WriteString("\n\n")
		}
		p := f.Active()
		if f.NameRequired() {
			writeValue(&b, intake.FieldName, p.Name)
		}
		writeValue(&b, intake.FieldAge, p.Age)
		writeAsk(&b, f)
		kb = kb.row(button(message.ForwardLabel(step)+" ›", intake.Advance{}))

	case intake.PickInstruments:
		b.WriteString("¿Qué instrumento querés aprender? 🎸\nPodés seleccionar varios\n")
		kb = toggles(kb, catalog.Instruments(), f.Active().Instruments,
			func(v catalog.Instrument) intake.Event { return intake.ToggleInstrument{Instrument: v} })
		kb = kb.row(button(message.ForwardLabel(step)+" ›", intake.Advance{}))

	case intake.PickTimes:
		b.WriteString("¿En qué horario preferís? ⏰\nPodés seleccionar varios\n")
		kb = toggles(kb, catalog.TimePreferences(), f.Active().Times,
			func(v catalog.TimePreference) intake.Event { return intake.ToggleTime{Time: v} })
		kb = kb.row(button(message.ForwardLabel(step)+" ›", intake.Advance{}))

	case intake.PickWeekdays:
		b.WriteString("¿Qué días tenés libres? 📅\nPodés seleccionar varios\n")
		kb = toggles(kb, catalog.Weekdays(), f.Active().Weekdays,
			func(v catalog.Weekday) intake.Event { return intake.ToggleWeekday{Weekday: v} })
		kb = kb.row(button(message.ForwardLabel(step)+" ›", intake.Advance{}))

	case intake.AddPersonPrompt:
		b.WriteString("¿Querés agregar otra persona?\n")
		kb = kb.row(button("Agregar otra persona al mismo grupo", intake.AddSameGroup{})).
			row(button("Agregar otra persona a otro grupo", intake.AddDifferentGroup{})).
			row(button("No, continuar", intake.DeclineAdd{}))

	case intake.Summary:
		b.WriteString("¡PERFECTO! 🎉\n\nResumen de tu consulta:\n\n")
		b.WriteString(r.Composer.Review(st).String())
		kb = kb.row(button("✅ Enviar por WhatsApp", intake.Finish{}))
		if f.CanAddPerson() {
			kb = kb.row(button("Agregar otra persona al mismo grupo", intake.AddSameGroup{})).
				row(button("Agregar otra persona a otro grupo", intake.AddDifferentGroup{}))
		}
	}

	for _, field := range f.Errors() {
		fmt.Fprintf(&b, "\n⚠️ %s", message.FieldError(field))
	}

	var nav []models.InlineKeyboardButton
	if _, first := step.(intake.ChooseClassType); !first {
		nav = append(nav, button("« Volver", intake.Retreat{}))
	}
	nav = append(nav, button("🔄 Reiniciar", intake.Reset{}), button("ℹ️ Info", intake.ToggleInfo{}))
	kb = kb.row(nav...)

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Markup: kb.markup()}
}

// Handoff builds the message carrying the link to the school.
func (r Renderer) Handoff(f *intake.Flow) Screen {
	text := r.Composer.Compose(f.State())
	link := message.Link(r.Cfg.Messaging.Domain, r.Cfg.Messaging.Contact, text)
	kb := keyboard{}.
		row(models.InlineKeyboardButton{Text: "📲 Abrir WhatsApp", URL: link}).
		row(button("🔄 Empezar de nuevo", intake.Reset{}))
	return Screen{
		Text:   "Este es tu mensaje:\n\n" + strings.TrimRight(text, "\n") + "\n\nTocá el botón para enviarlo por WhatsApp.",
		Markup: kb.markup(),
	}
}

func (r Renderer) infoScreen() Screen {
	md, err := info.Markdown(r.Cfg)
	if err != nil {
		md = r.Cfg.School.Name
	}
	kb := keyboard{}.row(button("« Volver", intake.ToggleInfo{}))
	return Screen{Text: plain(md), Markup: kb.markup()}
}

var (
	headingRe = regexp.MustCompile(`(?m)^#+\s*`)
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// plain strips the markdown the info template uses.
func plain(md string) string {
	s := headingRe.ReplaceAllString(md, "")
	s = boldRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

func writeValue(b *strings.Builder, field intake.Field, value string) {
	if strings.TrimSpace(value) == "" {
		value = "—"
	}
	fmt.Fprintf(b, "%s: %s\n", message.FieldPrompt(field), value)
}

// writeAsk tells the user which value the next text message fills.
func writeAsk(b *strings.Builder, f *intake.Flow) {
	if field, ok := textTarget(f); ok {
		fmt.Fprintf(b, "\n✏️ Escribí: %s", message.FieldPrompt(field))
	}
}

func mark(on bool) string {
	if on {
		return "✅ "
	}
	return ""
}

type labeled interface {
	comparable
	OptionLabel() string
}

func toggles[T labeled](kb keyboard, values []T, set intake.Set[T], event func(T) intake.Event) keyboard {
	var row []models.InlineKeyboardButton
	for _, v := range values {
		row = append(row, button(mark(set.Has(v))+v.OptionLabel(), event(v)))
		if len(row) == 2 {
			kb = kb.row(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = kb.row(row...)
	}
	return kb
}

// textFields lists, per step, the fields a text message can fill in order.
func textFields(f *intake.Flow) []intake.Field {
	switch f.Step().(type) {
	case intake.CollectIdentity:
		if o, ok := f.Option(); ok && o.Guardian {
			return []intake.Field{intake.FieldGuardianName, intake.FieldChildName, intake.FieldChildAge}
		}
		return []intake.Field{intake.FieldMainName}
	case intake.ParticipantDetails, intake.DraftDetails:
		if f.NameRequired() {
			return []intake.Field{intake.FieldName, intake.FieldAge}
		}
		return []intake.Field{intake.FieldAge}
	}
	return nil
}

// textTarget returns the first empty text field of the current step.
func textTarget(f *intake.Flow) (intake.Field, bool) {
	missing := f.Missing()
	for _, field := range textFields(f) {
		if slices.Contains(missing, field) {
			return field, true
		}
	}
	return "", false
}

// setEvent builds the event writing value into field.
func setEvent(field intake.Field, value string) intake.Event {
	switch field {
	case intake.FieldMainName:
		return intake.SetMainName{Value: value}
	case intake.FieldGuardianName:
		return intake.SetGuardianName{Value: value}
	case intake.FieldChildName:
		return intake.SetChildName{Value: value}
	case intake.FieldChildAge:
		return intake.SetChildAge{Value: value}
	case intake.FieldName:
		return intake.SetName{Value: value}
	case intake.FieldAge:
		return intake.SetAge{Value: value}
	}
	return nil
}
