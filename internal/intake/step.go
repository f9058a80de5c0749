package intake

import "fmt"

// Ref addresses the participant a step operates on: a committed roster
// index, or the draft of an add-person sub-flow.
type Ref struct {
	Index int
	Draft bool
}

// Committed returns a reference to roster index i.
func Committed(i int) Ref { return Ref{Index: i} }

// DraftRef references the participant being drafted.
var DraftRef = Ref{Draft: true}

func (r Ref) String() string {
	if r.Draft {
		return "draft"
	}
	return fmt.Sprintf("#%d", r.Index)
}

// Step is one screen of the intake flow. The concrete types below are the
// only implementations.
type Step interface {
	// Name identifies the step in logs and callback data.
	Name() string
	step()
}

// ChooseClassType asks for the class modality.
type ChooseClassType struct{}

// CollectIdentity asks for the contact's name, or for guardian and child in
// guardian classes.
type CollectIdentity struct{}

// ChooseRecipient asks whether the classes are for the contact or for
// someone else.
type ChooseRecipient struct{}

// ParticipantDetails asks for a participant's name and age.
type ParticipantDetails struct{ Ref Ref }

// PickInstruments asks which instruments a participant wants to learn.
type PickInstruments struct{ Ref Ref }

// PickTimes asks for a participant's preferred time bands.
type PickTimes struct{ Ref Ref }

// PickWeekdays asks for a participant's available days.
type PickWeekdays struct{ Ref Ref }

// AddPersonPrompt offers adding a person to the same group, to a different
// group, or finishing.
type AddPersonPrompt struct{}

// DraftDetails asks only name and age for a same-group participant whose
// preferences are inherited.
type DraftDetails struct{}

// Summary reviews everything and offers the handoff.
type Summary struct{}

func (ChooseClassType) Name() string      { return "choose_class_type" }
func (CollectIdentity) Name() string      { return "collect_identity" }
func (ChooseRecipient) Name() string      { return "choose_recipient" }
func (s ParticipantDetails) Name() string { return "participant_details" }
func (s PickInstruments) Name() string    { return "pick_instruments" }
func (s PickTimes) Name() string          { return "pick_times" }
func (s PickWeekdays) Name() string       { return "pick_weekdays" }
func (AddPersonPrompt) Name() string      { return "add_person_prompt" }
func (DraftDetails) Name() string         { return "draft_details" }
func (Summary) Name() string              { return "summary" }

func (ChooseClassType) step()    {}
func (CollectIdentity) step()    {}
func (ChooseRecipient) step()    {}
func (ParticipantDetails) step() {}
func (PickInstruments) step()    {}
func (PickTimes) step()          {}
func (PickWeekdays) step()       {}
func (AddPersonPrompt) step()    {}
func (DraftDetails) step()       {}
func (Summary) step()            {}

// RefOf returns the participant reference a step operates on. The second
// result is false for steps that do not address a participant.
func RefOf(s Step) (Ref, bool) {
	switch s := s.(type) {
	case ParticipantDetails:
		return s.Ref, true
	case PickInstruments:
		return s.Ref, true
	case PickTimes:
		return s.Ref, true
	case PickWeekdays:
		return s.Ref, true
	case DraftDetails:
		return DraftRef, true
	}
	return Ref{}, false
}
