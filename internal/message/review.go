package message

import (
	"fmt"
	"strings"

	"github.com/underground-music/intake/internal/intake"
)

// Review is the data shown on the summary screen.
type Review struct {
	Contact    string
	ClassLabel string
	People     []PersonReview
}

// PersonReview is one participant block of a Review. Heading is empty when
// the roster has a single participant.
type PersonReview struct {
	Heading     string
	Name        string
	Age         string
	Guardian    string
	Instruments string
	Times       string
	Weekdays    string
}

// Review builds the summary-screen data for st.
func (c Composer) Review(st *intake.State) Review {
	cat := c.catalog()
	people := st.Roster.Participants()
	r := Review{
		Contact:    strings.TrimSpace(st.Contact(cat)),
		ClassLabel: cat.SummaryLabel(st.ClassType, len(people)),
	}
	opt, _ := cat.Option(st.ClassType)
	for i, p := range people {
		pr := PersonReview{
			Name:        strings.TrimSpace(p.Name),
			Age:         p.Age,
			Instruments: Join(p.Instruments.Items()),
			Times:       Join(p.Times.Items()),
			Weekdays:    Join(p.Weekdays.Items()),
		}
		if len(people) > 1 {
			pr.Heading = fmt.Sprintf("Persona %d", i+1)
		}
		if opt.Guardian {
			pr.Guardian = strings.TrimSpace(st.Guardian.Name)
		}
		r.People = append(r.People, pr)
	}
	return r
}

// String renders the review as plain text.
func (r Review) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", r.Contact)
	fmt.Fprintf(&b, "Tipo de clase: %s\n", r.ClassLabel)
	for _, p := range r.People {
		b.WriteString("\n")
		if p.Heading != "" {
			fmt.Fprintf(&b, "%s:\n", p.Heading)
		}
		fmt.Fprintf(&b, "Nombre: %s\n", p.Name)
		fmt.Fprintf(&b, "Edad: %s años\n", p.Age)
		if p.Guardian != "" {
			fmt.Fprintf(&b, "Tutor/Responsable: %s\n", p.Guardian)
		}
		fmt.Fprintf(&b, "Instrumentos: %s\n", p.Instruments)
		fmt.Fprintf(&b, "Horarios: %s\n", p.Times)
		fmt.Fprintf(&b, "Días: %s\n", p.Weekdays)
	}
	return b.String()
}
