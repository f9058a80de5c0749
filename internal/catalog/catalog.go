// Package catalog defines the class types offered by the school and the
// enumerated choices (instruments, time bands, weekdays) a student picks from.
//
// The intake flow is parameterized by this table: whether the identity step
// captures a guardian, and how many people a class admits, come from the
// ClassOption rather than from switches on the class type.
package catalog

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ClassType identifies a class modality.
type ClassType string

// ClassType values. The zero value means no class chosen yet.
const (
	Individual ClassType = "individual"
	Group      ClassType = "group"
	Kids       ClassType = "kids"
)

// ParseClassType converts an identifier such as "group" into a ClassType.
func ParseClassType(s string) (ClassType, error) {
	switch ClassType(s) {
	case Individual, Group, Kids:
		return ClassType(s), nil
	}
	return "", fmt.Errorf("unknown class type %q", s)
}

// ClassOption is one row of the class catalog.
type ClassOption struct {
	Type     ClassType
	Title    string // button title on the first screen
	Schedule string // duration and frequency copy
	Price    int    // monthly price in ARS

	// MessageLabel names the class in the composed message.
	MessageLabel string
	// SummaryLabel names the class on the review screen. Group classes
	// append the participant count.
	SummaryLabel string

	// Guardian is set for classes where an adult enrolls a child: the
	// identity step captures guardian and child, and the for-whom question
	// is skipped.
	Guardian bool
	// MaxParticipants bounds the roster. Values above one enable the
	// add-another-person sub-flows.
	MaxParticipants int
}

// AllowsGroup reports whether more than one participant can enroll.
func (o ClassOption) AllowsGroup() bool { return o.MaxParticipants > 1 }

// PriceText renders the monthly price as "$32.000/mes".
func (o ClassOption) PriceText() string {
	return "$" + FormatAmount(o.Price) + "/mes"
}

// Catalog is the ordered table of class options.
type Catalog struct {
	options []ClassOption
}

// Default returns the school's class catalog in display order.
func Default() *Catalog {
	return &Catalog{options: []ClassOption{
		{
			Type:            Group,
			Title:           "Clase Grupal (hasta 3 personas)",
			Schedule:        "1 hora • 1 vez por semana",
			Price:           32000,
			MessageLabel:    "Grupal",
			SummaryLabel:    "Grupal",
			MaxParticipants: 3,
		},
		{
			Type:            Individual,
			Title:           "Individual",
			Schedule:        "1 hora • 1 vez por semana",
			Price:           55000,
			MessageLabel:    "Individual (1 hora)",
			SummaryLabel:    "Individual (1 hora)",
			MaxParticipants: 1,
		},
		{
			Type:            Kids,
			Title:           "Individual Niños (4 a 8 años)",
			Schedule:        "30 minutos • 1 vez por semana",
			Price:           39000,
			MessageLabel:    "Individual para niños (30 min)",
			SummaryLabel:    "Individual Niños (30 min)",
			Guardian:        true,
			MaxParticipants: 1,
		},
	}}
}

// Options returns a copy of the catalog rows.
func (c *Catalog) Options() []ClassOption {
	return append([]ClassOption(nil), c.options...)
}

// Option returns the row for t.
func (c *Catalog) Option(t ClassType) (ClassOption, bool) {
	for _, o := range c.options {
		if o.Type == t {
			return o, true
		}
	}
	return ClassOption{}, false
}

// WithPrices returns a copy of the catalog with the given monthly prices.
// Unknown class types and non-positive prices are ignored.
func (c *Catalog) WithPrices(prices map[ClassType]int) *Catalog {
	out := &Catalog{options: c.Options()}
	for i := range out.options {
		if p, ok := prices[out.options[i].Type]; ok && p > 0 {
			out.options[i].Price = p
		}
	}
	return out
}

// SummaryLabel returns the review-screen label for t with n participants.
func (c *Catalog) SummaryLabel(t ClassType, n int) string {
	o, ok := c.Option(t)
	if !ok {
		return ""
	}
	if !o.AllowsGroup() {
		return o.SummaryLabel
	}
	suffix := ""
	if n > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("%s (%d persona%s)", o.SummaryLabel, n, suffix)
}

var amountPrinter = message.NewPrinter(language.Spanish)

// FormatAmount groups digits the Spanish way, e.g. 32000 -> "32.000".
func FormatAmount(n int) string {
	return amountPrinter.Sprintf("%d", n)
}
