package message

import (
	"fmt"

	"github.com/underground-music/intake/internal/intake"
)

var fieldErrors = map[intake.Field]string{
	intake.FieldMainName:     "Por favor, ingresá tu nombre",
	intake.FieldGuardianName: "Por favor, ingresá tu nombre",
	intake.FieldChildName:    "Por favor, ingresá el nombre del alumno",
	intake.FieldChildAge:     "Por favor, ingresá la edad del alumno",
	intake.FieldName:         "Por favor, ingresá el nombre",
	intake.FieldAge:          "Por favor, ingresá la edad",
	intake.FieldInstruments:  "Por favor, elegí al menos un instrumento",
	intake.FieldTimes:        "Por favor, elegí al menos un horario",
	intake.FieldWeekdays:     "Por favor, elegí al menos un día",
}

var fieldPrompts = map[intake.Field]string{
	intake.FieldMainName:     "Tu nombre",
	intake.FieldGuardianName: "Tu nombre (padre/madre/tutor)",
	intake.FieldChildName:    "Nombre del niño/a",
	intake.FieldChildAge:     "Edad (4 a 8 años)",
	intake.FieldName:         "Nombre de la persona",
	intake.FieldAge:          "Edad",
}

// FieldError returns the message shown for a flagged field.
func FieldError(f intake.Field) string { return fieldErrors[f] }

// FieldPrompt returns the placeholder of a text field, or "" for the
// preference sets.
func FieldPrompt(f intake.Field) string { return fieldPrompts[f] }

// ForwardLabel is the caption of the forward action on step s.
func ForwardLabel(s intake.Step) string {
	switch s := s.(type) {
	case intake.PickWeekdays:
		if !s.Ref.Draft {
			return "Finalizar"
		}
	case intake.DraftDetails:
		return "Aceptar"
	}
	return "Siguiente"
}

// Advisory suggests the guardian class for a young participant.
func Advisory(f *intake.Flow) string {
	var price string
	for _, o := range f.Catalog().Options() {
		if o.Guardian {
			price = o.PriceText()
			break
		}
	}
	s := fmt.Sprintf("💡 Para menores de %d años (inclusive), recomendamos la modalidad \"Individual Niños\" de 30 minutos por %s",
		f.AdvisoryAge(), price)
	if o, ok := f.Option(); ok && o.AllowsGroup() {
		s += " en lugar de grupal"
	}
	return s
}
