package intake

import (
	"strings"

	"github.com/underground-music/intake/internal/catalog"
)

// Field names a required input.
type Field string

// Field values.
const (
	FieldMainName     Field = "main_name"
	FieldGuardianName Field = "guardian_name"
	FieldChildName    Field = "child_name"
	FieldChildAge     Field = "child_age"
	FieldName         Field = "name"
	FieldAge          Field = "age"
	FieldInstruments  Field = "instruments"
	FieldTimes        Field = "times"
	FieldWeekdays     Field = "weekdays"
)

// DefaultAdvisoryAge is the age at or under which the kids class is
// recommended.
const DefaultAdvisoryAge = 8

// Validator decides which required fields a step still lacks.
type Validator struct {
	Catalog *catalog.Catalog
	// AdvisoryAge is the age at or under which Advisory recommends the
	// guardian class.
	AdvisoryAge int
}

// Missing returns the required fields of step that are still empty, in
// screen order. Steps without inputs never miss anything.
func (v Validator) Missing(st *State, step Step) []Field {
	var missing []Field
	need := func(ok bool, f Field) {
		if !ok {
			missing = append(missing, f)
		}
	}

	switch s := step.(type) {
	case CollectIdentity:
		if v.guardian(st) {
			need(filled(st.Guardian.Name), FieldGuardianName)
			need(filled(st.Guardian.ChildName), FieldChildName)
			need(filled(st.Guardian.ChildAge), FieldChildAge)
		} else {
			need(filled(st.MainName), FieldMainName)
		}
	case ParticipantDetails:
		p := st.participant(s.Ref)
		if p == nil {
			return []Field{FieldName, FieldAge}
		}
		if NameRequired(st, s.Ref) {
			need(filled(p.Name), FieldName)
		}
		need(filled(p.Age), FieldAge)
	case DraftDetails:
		p := st.Pending
		if p == nil {
			return []Field{FieldName, FieldAge}
		}
		need(filled(p.Name), FieldName)
		need(filled(p.Age), FieldAge)
	case PickInstruments:
		p := st.participant(s.Ref)
		need(p != nil && !p.Instruments.Empty(), FieldInstruments)
	case PickTimes:
		p := st.participant(s.Ref)
		need(p != nil && !p.Times.Empty(), FieldTimes)
	case PickWeekdays:
		p := st.participant(s.Ref)
		need(p != nil && !p.Weekdays.Empty(), FieldWeekdays)
	}
	return missing
}

// Complete reports whether step has every required field.
func (v Validator) Complete(st *State, step Step) bool {
	return len(v.Missing(st, step)) == 0
}

// Advisory reports whether the participant at ref is young enough that the
// guardian class should be suggested. It never blocks navigation.
func (v Validator) Advisory(st *State, ref Ref) bool {
	if v.guardian(st) {
		return false
	}
	p := st.participant(ref)
	if p == nil {
		return false
	}
	age, ok := p.AgeYears()
	limit := v.AdvisoryAge
	if limit <= 0 {
		limit = DefaultAdvisoryAge
	}
	return ok && age > 0 && age <= limit
}

// NameRequired reports whether the participant at ref must have a name.
// The first participant of a for-myself enrollment already carries the
// contact's name and is exempt; drafted participants never are.
func NameRequired(st *State, ref Ref) bool {
	return ref.Draft || ref.Index != 0 || st.ForSelf != ForSelfYes
}

func (v Validator) guardian(st *State) bool {
	o, ok := v.Catalog.Option(st.ClassType)
	return ok && o.Guardian
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

// digits keeps only ASCII digits.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
