// Package message renders a finished intake into the text sent to the school
// and into the review shown before sending.
package message

import (
	"fmt"
	"strings"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
)

// DefaultSchool is the school named in the greeting when none is configured.
const DefaultSchool = "Underground"

// NotSelected stands in for an empty preference set.
const NotSelected = "No seleccionado"

// Composer renders intake state. The zero value uses the default catalog and
// school name.
type Composer struct {
	School  string
	Catalog *catalog.Catalog
}

func (c Composer) school() string {
	if c.School == "" {
		return DefaultSchool
	}
	return c.School
}

func (c Composer) catalog() *catalog.Catalog {
	if c.Catalog == nil {
		return catalog.Default()
	}
	return c.Catalog
}

// Compose builds the enrollment message for st. It never fails: missing
// data renders as empty values or NotSelected.
func (c Composer) Compose(st *intake.State) string {
	cat := c.catalog()
	var b strings.Builder

	fmt.Fprintf(&b, "¡Hola! Mi nombre es %s y estoy interesado/a en clases de música en %s.\n\n",
		strings.TrimSpace(st.Contact(cat)), c.school())

	opt, ok := cat.Option(st.ClassType)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "Tipo de clase: %s\n\n", opt.MessageLabel)

	people := st.Roster.Participants()
	if !opt.AllowsGroup() {
		if len(people) == 0 {
			return b.String()
		}
		p := people[0]
		b.WriteString("Datos del estudiante:\n")
		writeIdentity(&b, p)
		if opt.Guardian {
			fmt.Fprintf(&b, "- Tutor/Responsable: %s\n", strings.TrimSpace(st.Guardian.Name))
		}
		writePreferences(&b, p)
		return b.String()
	}

	if len(people) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Datos de los %d estudiantes:\n\n", len(people))
	for i, p := range people {
		fmt.Fprintf(&b, "Estudiante %d:\n", i+1)
		writeIdentity(&b, p)
		writePreferences(&b, p)
		b.WriteString("\n")
	}
	return b.String()
}

func writeIdentity(b *strings.Builder, p intake.Participant) {
	fmt.Fprintf(b, "- Nombre: %s\n", strings.TrimSpace(p.Name))
	fmt.Fprintf(b, "- Edad: %s años\n", p.Age)
}

func writePreferences(b *strings.Builder, p intake.Participant) {
	fmt.Fprintf(b, "- Instrumentos: %s\n", Join(p.Instruments.Items()))
	fmt.Fprintf(b, "- Horarios preferidos: %s\n", Join(p.Times.Items()))
	fmt.Fprintf(b, "- Días disponibles: %s\n", Join(p.Weekdays.Items()))
}

// Join renders choices as comma-separated display labels, or NotSelected
// when there are none.
func Join[T catalog.Labeled](items []T) string {
	if len(items) == 0 {
		return NotSelected
	}
	return strings.Join(catalog.Labels(items), ", ")
}
