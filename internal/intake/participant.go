package intake

import (
	"slices"
	"strconv"
	"strings"

	"github.com/underground-music/intake/internal/catalog"
)

// Set is an insertion-ordered set of choices.
type Set[T comparable] struct {
	items []T
}

// NewSet returns a set holding vs in order, without duplicates.
func NewSet[T comparable](vs ...T) Set[T] {
	var s Set[T]
	for _, v := range vs {
		if !s.Has(v) {
			s.items = append(s.items, v)
		}
	}
	return s
}

// Toggle adds v when absent and removes it when present. It reports whether
// v is selected afterwards.
func (s *Set[T]) Toggle(v T) bool {
	if i := slices.Index(s.items, v); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Has reports whether v is selected.
func (s Set[T]) Has(v T) bool { return slices.Contains(s.items, v) }

// Len returns the number of selected values.
func (s Set[T]) Len() int { return len(s.items) }

// Empty reports whether nothing is selected.
func (s Set[T]) Empty() bool { return len(s.items) == 0 }

// Items returns the selected values in selection order.
func (s Set[T]) Items() []T { return slices.Clone(s.items) }

// Clone returns an independent copy.
func (s Set[T]) Clone() Set[T] { return Set[T]{items: slices.Clone(s.items)} }

// Participant is one person who would attend classes.
type Participant struct {
	Name        string
	Age         string
	Instruments Set[catalog.Instrument]
	Times       Set[catalog.TimePreference]
	Weekdays    Set[catalog.Weekday]
}

// Clone returns a deep copy of p.
func (p Participant) Clone() Participant {
	return Participant{
		Name:        p.Name,
		Age:         p.Age,
		Instruments: p.Instruments.Clone(),
		Times:       p.Times.Clone(),
		Weekdays:    p.Weekdays.Clone(),
	}
}

// withPreferencesOf returns a participant without name or age that shares
// the instrument, time and weekday selections of p.
func withPreferencesOf(p Participant) Participant {
	return Participant{
		Instruments: p.Instruments.Clone(),
		Times:       p.Times.Clone(),
		Weekdays:    p.Weekdays.Clone(),
	}
}

// AgeYears parses Age. The second result is false when Age is empty or not
// a number.
func (p Participant) AgeYears() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.Age))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Guardian is the adult enrolling a child in a guardian class.
type Guardian struct {
	Name      string
	ChildName string
	ChildAge  string
}

// Roster is the ordered list of committed participants. Insertion order is
// display order.
type Roster struct {
	people []Participant
	limit  int
}

// NewRoster returns an empty roster admitting at most limit participants.
func NewRoster(limit int) Roster {
	if limit < 1 {
		limit = 1
	}
	return Roster{limit: limit}
}

// Len returns the number of committed participants.
func (r *Roster) Len() int { return len(r.people) }

// Limit returns the maximum number of participants.
func (r *Roster) Limit() int { return r.limit }

// Full reports whether no more participants can be added.
func (r *Roster) Full() bool { return len(r.people) >= r.limit }

// At returns the participant at index i, or nil when out of range.
// The pointer aliases roster storage.
func (r *Roster) At(i int) *Participant {
	if i < 0 || i >= len(r.people) {
		return nil
	}
	return &r.people[i]
}

// Append commits p at the end. It reports false, leaving the roster
// unchanged, when the roster is full.
func (r *Roster) Append(p Participant) bool {
	if r.Full() {
		return false
	}
	r.people = append(r.people, p)
	return true
}

// Draft builds a participant to be added in the given mode: same-group
// drafts copy the first participant's preferences, different-group drafts
// start empty. It reports false when the roster is full or the mode is none.
func (r *Roster) Draft(mode AddMode) (Participant, bool) {
	if r.Full() {
		return Participant{}, false
	}
	switch mode {
	case ModeSameGroup:
		if first := r.At(0); first != nil {
			return withPreferencesOf(*first), true
		}
		return Participant{}, true
	case ModeDifferentGroup:
		return Participant{}, true
	}
	return Participant{}, false
}

// Participants returns a deep copy of the committed participants.
func (r *Roster) Participants() []Participant {
	out := make([]Participant, len(r.people))
	for i, p := range r.people {
		out[i] = p.Clone()
	}
	return out
}
