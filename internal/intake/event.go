package intake

import (
	"time"

	"github.com/underground-music/intake/internal/catalog"
)

// Event is a user action (or a fired timer) fed to Flow.Dispatch.
type Event interface{ event() }

// SelectClassType picks the class modality.
type SelectClassType struct{ Type catalog.ClassType }

// SetMainName edits the contact name.
type SetMainName struct{ Value string }

// SetGuardianName edits the guardian's name.
type SetGuardianName struct{ Value string }

// SetChildName edits the child's name.
type SetChildName struct{ Value string }

// SetChildAge edits the child's age. Non-digits are dropped.
type SetChildAge struct{ Value string }

// SelectRecipient answers whether the classes are for the contact.
type SelectRecipient struct{ ForSelf bool }

// SetName edits the name of the participant the current step addresses.
type SetName struct{ Value string }

// SetAge edits the age of the participant the current step addresses.
// Non-digits are dropped.
type SetAge struct{ Value string }

// ToggleInstrument flips one instrument for the addressed participant.
type ToggleInstrument struct{ Instrument catalog.Instrument }

// ToggleTime flips one time band for the addressed participant.
type ToggleTime struct{ Time catalog.TimePreference }

// ToggleWeekday flips one day for the addressed participant.
type ToggleWeekday struct{ Weekday catalog.Weekday }

// Advance moves forward when the current step is complete.
type Advance struct{}

// Retreat moves back.
type Retreat struct{}

// AddSameGroup drafts a participant sharing the first participant's
// preferences.
type AddSameGroup struct{}

// AddDifferentGroup drafts a participant with fresh preferences.
type AddDifferentGroup struct{}

// AddAnother repeats the last chosen add mode, or asks for one.
type AddAnother struct{}

// DeclineAdd dismisses the add-person prompt.
type DeclineAdd struct{}

// Finish requests the handoff from the summary.
type Finish struct{}

// Reset discards everything and starts over.
type Reset struct{}

// ToggleInfo shows or hides the school information panel.
type ToggleInfo struct{}

// AutoAdvance is delivered by the front end when a scheduled transition's
// delay elapses.
type AutoAdvance struct{ Token uint64 }

func (SelectClassType) event()   {}
func (SetMainName) event()       {}
func (SetGuardianName) event()   {}
func (SetChildName) event()      {}
func (SetChildAge) event()       {}
func (SelectRecipient) event()   {}
func (SetName) event()           {}
func (SetAge) event()            {}
func (ToggleInstrument) event()  {}
func (ToggleTime) event()        {}
func (ToggleWeekday) event()     {}
func (Advance) event()           {}
func (Retreat) event()           {}
func (AddSameGroup) event()      {}
func (AddDifferentGroup) event() {}
func (AddAnother) event()        {}
func (DeclineAdd) event()        {}
func (Finish) event()            {}
func (Reset) event()             {}
func (ToggleInfo) event()        {}
func (AutoAdvance) event()       {}

// Effect is work Dispatch asks the front end to perform.
type Effect interface{ effect() }

// ScheduleAdvance asks the front end to deliver AutoAdvance{Token} after
// Delay. A token that is no longer current is ignored on delivery.
type ScheduleAdvance struct {
	Token uint64
	Delay time.Duration
}

// Handoff asks the front end to compose the message and open the link.
type Handoff struct{}

func (ScheduleAdvance) effect() {}
func (Handoff) effect()         {}
