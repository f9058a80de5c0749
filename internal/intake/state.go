package intake

import "github.com/underground-music/intake/internal/catalog"

// ForSelf records whether the main contact enrolls themselves. ForSelfUnset
// is a valid pending answer distinct from both yes and no.
type ForSelf int

// ForSelf values.
const (
	ForSelfUnset ForSelf = iota
	ForSelfYes
	ForSelfNo
)

// AddMode is the way an additional group participant is added.
type AddMode int

// AddMode values.
const (
	ModeNone AddMode = iota
	// ModeSameGroup joins the first participant's group: preferences are
	// inherited and only name and age are asked.
	ModeSameGroup
	// ModeDifferentGroup starts a separate group: the full participant
	// sequence is asked.
	ModeDifferentGroup
)

func (m AddMode) String() string {
	switch m {
	case ModeSameGroup:
		return "same_group"
	case ModeDifferentGroup:
		return "different_group"
	}
	return "none"
}

// State is everything the user has entered so far.
type State struct {
	ClassType catalog.ClassType
	ForSelf   ForSelf
	MainName  string
	Guardian  Guardian
	Roster    Roster

	// Pending is a participant being drafted by an add-person sub-flow. It
	// joins the roster only when the sub-flow completes.
	Pending *Participant

	// LastAddMode is the add mode chosen last, so a repeated add skips the
	// choice.
	LastAddMode AddMode
}

func newState() State {
	return State{Roster: NewRoster(1)}
}

// Contact returns the name the composed message greets with: the guardian
// for guardian classes, otherwise the main contact.
func (s *State) Contact(cat *catalog.Catalog) string {
	if o, ok := cat.Option(s.ClassType); ok && o.Guardian {
		return s.Guardian.Name
	}
	return s.MainName
}

// participant resolves ref to a participant, or nil.
func (s *State) participant(ref Ref) *Participant {
	if ref.Draft {
		return s.Pending
	}
	return s.Roster.At(ref.Index)
}
