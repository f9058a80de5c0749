// Package intake implements the enrollment intake flow: the participant data
// model, per-step validation and the step sequencer.
//
// A Flow is driven by dispatching Events; every transition happens inside
// Dispatch. Flows are not safe for concurrent use.
package intake

import (
	"strings"
	"time"

	"github.com/underground-music/intake/internal/catalog"
)

// Options configures a Flow.
type Options struct {
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
	// AutoAdvance is the delay between an auto-advancing selection (class
	// type, for whom) and the transition. Zero transitions immediately.
	AutoAdvance time.Duration
	// AdvisoryAge defaults to DefaultAdvisoryAge.
	AdvisoryAge int
}

// Transition describes what a dispatched event changed.
type Transition struct {
	From  Step
	To    Step
	Event Event
	// Participants is the roster size after the event.
	Participants int
	// Added is set when a participant joined the roster.
	Added bool
	// Discarded is set when a draft was dropped without being committed.
	Discarded bool
}

// Observer is called after events that change the step, the roster or the
// draft, and after every Reset, SelectClassType and Finish.
type Observer func(Transition)

// Flow is one intake session.
type Flow struct {
	opts      Options
	validator Validator
	observer  Observer

	state State
	step  Step
	errs  map[Field]bool
	info  bool

	// token identifies the latest scheduled auto-advance; scheduled is
	// nil when none is pending.
	token     uint64
	scheduled func()
}

// NewFlow returns a flow at the class-type step.
func NewFlow(opts Options) *Flow {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.AdvisoryAge <= 0 {
		opts.AdvisoryAge = DefaultAdvisoryAge
	}
	f := &Flow{
		opts:      opts,
		validator: Validator{Catalog: opts.Catalog, AdvisoryAge: opts.AdvisoryAge},
	}
	f.reset()
	return f
}

// Observe registers o, replacing any previous observer.
func (f *Flow) Observe(o Observer) { f.observer = o }

// State returns the flow's data. Callers must not modify it.
func (f *Flow) State() *State { return &f.state }

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// Catalog returns the class catalog driving the flow.
func (f *Flow) Catalog() *catalog.Catalog { return f.opts.Catalog }

// Option returns the catalog row of the chosen class type.
func (f *Flow) Option() (catalog.ClassOption, bool) {
	return f.opts.Catalog.Option(f.state.ClassType)
}

// InfoVisible reports whether the information panel is shown.
func (f *Flow) InfoVisible() bool { return f.info }

// AdvisoryAge is the age up to which the guardian class is suggested.
func (f *Flow) AdvisoryAge() int { return f.opts.AdvisoryAge }

// AdvancePending reports whether an auto-advance is scheduled.
func (f *Flow) AdvancePending() bool { return f.scheduled != nil }

// Missing lists the current step's empty required fields.
func (f *Flow) Missing() []Field { return f.validator.Missing(&f.state, f.step) }

// CanAdvance reports whether the forward action is enabled.
func (f *Flow) CanAdvance() bool {
	switch f.step.(type) {
	case ChooseClassType:
		return f.state.ClassType != ""
	case ChooseRecipient:
		return f.state.ForSelf != ForSelfUnset
	case AddPersonPrompt, Summary:
		return false
	}
	return f.validator.Complete(&f.state, f.step)
}

// HasError reports whether field is flagged as missing.
func (f *Flow) HasError(field Field) bool { return f.errs[field] }

// Errors returns the flagged fields in screen order.
func (f *Flow) Errors() []Field {
	var out []Field
	for _, field := range fieldOrder {
		if f.errs[field] {
			out = append(out, field)
		}
	}
	return out
}

var fieldOrder = []Field{
	FieldMainName, FieldGuardianName, FieldChildName, FieldChildAge,
	FieldName, FieldAge, FieldInstruments, FieldTimes, FieldWeekdays,
}

// Active returns the participant the current step addresses, or nil.
func (f *Flow) Active() *Participant {
	ref, ok := RefOf(f.step)
	if !ok {
		return nil
	}
	return f.state.participant(ref)
}

// Advisory reports whether the current step should suggest the kids class.
func (f *Flow) Advisory() bool {
	ref, ok := RefOf(f.step)
	return ok && f.validator.Advisory(&f.state, ref)
}

// NameRequired reports whether the current step asks for a name.
func (f *Flow) NameRequired() bool {
	ref, ok := RefOf(f.step)
	return ok && NameRequired(&f.state, ref)
}

// CanAddPerson reports whether another participant may be added.
func (f *Flow) CanAddPerson() bool {
	o, ok := f.Option()
	return ok && o.AllowsGroup() && !f.state.Roster.Full() && f.state.Pending == nil
}

// Dispatch applies e and returns the effect the front end must perform, if
// any. Requests that make no sense in the current step are ignored.
func (f *Flow) Dispatch(e Event) Effect {
	switch e := e.(type) {
	case AutoAdvance:
		return f.fire(e)
	case ToggleInfo:
		f.info = !f.info
		return nil
	}
	if f.info {
		return nil
	}

	// Any user action cancels a pending auto-advance.
	f.scheduled = nil

	from, size, drafting := f.step, f.state.Roster.Len(), f.state.Pending != nil
	eff := f.apply(e)
	f.notify(e, from, size, drafting)
	return eff
}

func (f *Flow) fire(e AutoAdvance) Effect {
	if f.scheduled == nil || e.Token != f.token {
		return nil
	}
	run := f.scheduled
	f.scheduled = nil

	from, size, drafting := f.step, f.state.Roster.Len(), f.state.Pending != nil
	run()
	f.notify(e, from, size, drafting)
	return nil
}

func (f *Flow) notify(e Event, from Step, size int, drafting bool) {
	if f.observer == nil {
		return
	}
	t := Transition{
		From:         from,
		To:           f.step,
		Event:        e,
		Participants: f.state.Roster.Len(),
		Added:        f.state.Roster.Len() > size,
	}
	t.Discarded = drafting && f.state.Pending == nil && !t.Added

	switch e.(type) {
	case Reset, SelectClassType, Finish:
	default:
		if t.From == t.To && !t.Added && !t.Discarded {
			return
		}
	}
	f.observer(t)
}

func (f *Flow) apply(e Event) Effect {
	switch e.(type) {
	case Reset:
		f.reset()
		return nil
	case Advance:
		f.advance()
		return nil
	case Retreat:
		f.retreat()
		return nil
	}

	switch s := f.step.(type) {
	case ChooseClassType:
		if e, ok := e.(SelectClassType); ok {
			return f.selectClassType(e.Type)
		}
	case CollectIdentity:
		f.editIdentity(e)
	case ChooseRecipient:
		if e, ok := e.(SelectRecipient); ok {
			f.state.ForSelf = ForSelfNo
			if e.ForSelf {
				f.state.ForSelf = ForSelfYes
			}
			return f.schedule(f.completeRecipient)
		}
	case ParticipantDetails:
		f.editDetails(s.Ref, e)
	case DraftDetails:
		f.editDetails(DraftRef, e)
	case PickInstruments:
		if e, ok := e.(ToggleInstrument); ok && e.Instrument.Valid() {
			if p := f.state.participant(s.Ref); p != nil {
				p.Instruments.Toggle(e.Instrument)
				f.clearIf(FieldInstruments, !p.Instruments.Empty())
			}
		}
	case PickTimes:
		if e, ok := e.(ToggleTime); ok && e.Time.Valid() {
			if p := f.state.participant(s.Ref); p != nil {
				p.Times.Toggle(e.Time)
				f.clearIf(FieldTimes, !p.Times.Empty())
			}
		}
	case PickWeekdays:
		if e, ok := e.(ToggleWeekday); ok && e.Weekday.Valid() {
			if p := f.state.participant(s.Ref); p != nil {
				p.Weekdays.Toggle(e.Weekday)
				f.clearIf(FieldWeekdays, !p.Weekdays.Empty())
			}
		}
	case AddPersonPrompt:
		switch e.(type) {
		case AddSameGroup:
			f.beginAdd(ModeSameGroup)
		case AddDifferentGroup:
			f.beginAdd(ModeDifferentGroup)
		case DeclineAdd:
			f.goTo(Summary{})
		}
	case Summary:
		switch e.(type) {
		case AddSameGroup:
			f.beginAdd(ModeSameGroup)
		case AddDifferentGroup:
			f.beginAdd(ModeDifferentGroup)
		case AddAnother:
			f.addAnother()
		case Finish:
			return Handoff{}
		}
	}
	return nil
}

func (f *Flow) reset() {
	f.state = newState()
	f.step = ChooseClassType{}
	f.errs = make(map[Field]bool)
	f.info = false
	f.scheduled = nil
}

func (f *Flow) goTo(s Step) {
	f.step = s
	clear(f.errs)
}

func (f *Flow) clearIf(field Field, ok bool) {
	if ok {
		delete(f.errs, field)
	}
}

func (f *Flow) guardian() bool {
	o, ok := f.Option()
	return ok && o.Guardian
}

// schedule runs the deferred transition now when no delay is configured,
// otherwise asks the front end for a timer.
func (f *Flow) schedule(run func()) Effect {
	if f.opts.AutoAdvance <= 0 {
		run()
		return nil
	}
	f.token++
	f.scheduled = run
	return ScheduleAdvance{Token: f.token, Delay: f.opts.AutoAdvance}
}

func (f *Flow) selectClassType(t catalog.ClassType) Effect {
	o, ok := f.opts.Catalog.Option(t)
	if !ok {
		return nil
	}
	if t != f.state.ClassType {
		f.state.ClassType = t
		f.state.ForSelf = ForSelfUnset
		f.state.Roster = NewRoster(o.MaxParticipants)
		f.state.Pending = nil
		f.state.LastAddMode = ModeNone
	}
	return f.schedule(f.completeClassType)
}

func (f *Flow) completeClassType() { f.goTo(CollectIdentity{}) }

func (f *Flow) completeRecipient() {
	first := f.state.Roster.At(0)
	if first == nil {
		f.state.Roster.Append(Participant{})
		first = f.state.Roster.At(0)
	}
	mainName := strings.TrimSpace(f.state.MainName)
	switch {
	case f.state.ForSelf == ForSelfYes:
		first.Name = mainName
	case first.Name == mainName:
		first.Name = ""
	}
	f.goTo(ParticipantDetails{Ref: Committed(0)})
}

// commitChild builds the single guardian-class participant from the
// identity form, keeping preferences already chosen.
func (f *Flow) commitChild() {
	g := f.state.Guardian
	child := f.state.Roster.At(0)
	if child == nil {
		f.state.Roster.Append(Participant{})
		child = f.state.Roster.At(0)
	}
	child.Name = strings.TrimSpace(g.ChildName)
	child.Age = g.ChildAge
}

func (f *Flow) editIdentity(e Event) {
	guardian := f.guardian()
	switch e := e.(type) {
	case SetMainName:
		if !guardian {
			f.state.MainName = e.Value
			f.clearIf(FieldMainName, filled(e.Value))
		}
	case SetGuardianName:
		if guardian {
			f.state.Guardian.Name = e.Value
			f.clearIf(FieldGuardianName, filled(e.Value))
		}
	case SetChildName:
		if guardian {
			f.state.Guardian.ChildName = e.Value
			f.clearIf(FieldChildName, filled(e.Value))
		}
	case SetChildAge:
		if guardian {
			f.state.Guardian.ChildAge = digits(e.Value)
			f.clearIf(FieldChildAge, f.state.Guardian.ChildAge != "")
		}
	}
}

func (f *Flow) editDetails(ref Ref, e Event) {
	p := f.state.participant(ref)
	if p == nil {
		return
	}
	switch e := e.(type) {
	case SetName:
		p.Name = e.Value
		f.clearIf(FieldName, filled(e.Value))
	case SetAge:
		p.Age = digits(e.Value)
		f.clearIf(FieldAge, p.Age != "")
	}
}

func (f *Flow) advance() {
	if missing := f.Missing(); len(missing) > 0 {
		for _, field := range missing {
			f.errs[field] = true
		}
		return
	}

	switch s := f.step.(type) {
	case ChooseClassType:
		if f.state.ClassType != "" {
			f.completeClassType()
		}
	case CollectIdentity:
		if f.guardian() {
			f.commitChild()
			f.goTo(PickInstruments{Ref: Committed(0)})
			return
		}
		f.goTo(ChooseRecipient{})
	case ChooseRecipient:
		if f.state.ForSelf != ForSelfUnset {
			f.completeRecipient()
		}
	case ParticipantDetails:
		f.goTo(PickInstruments{Ref: s.Ref})
	case PickInstruments:
		f.goTo(PickTimes{Ref: s.Ref})
	case PickTimes:
		f.goTo(PickWeekdays{Ref: s.Ref})
	case PickWeekdays:
		o, _ := f.Option()
		switch {
		case s.Ref.Draft:
			f.commitDraft()
		case o.AllowsGroup() && f.state.Roster.Len() == 1 && f.state.LastAddMode == ModeNone:
			f.goTo(AddPersonPrompt{})
		default:
			f.goTo(Summary{})
		}
	case DraftDetails:
		f.commitDraft()
	}
}

func (f *Flow) retreat() {
	switch s := f.step.(type) {
	case CollectIdentity:
		f.goTo(ChooseClassType{})
	case ChooseRecipient:
		f.goTo(CollectIdentity{})
	case ParticipantDetails:
		if s.Ref.Draft {
			f.discardDraft()
			return
		}
		f.goTo(ChooseRecipient{})
	case DraftDetails:
		f.discardDraft()
	case PickInstruments:
		if !s.Ref.Draft && f.guardian() {
			f.goTo(CollectIdentity{})
			return
		}
		f.goTo(ParticipantDetails{Ref: s.Ref})
	case PickTimes:
		f.goTo(PickInstruments{Ref: s.Ref})
	case PickWeekdays:
		f.goTo(PickTimes{Ref: s.Ref})
	case Summary:
		f.goTo(PickWeekdays{Ref: Committed(0)})
	}
}

func (f *Flow) beginAdd(mode AddMode) {
	if !f.CanAddPerson() {
		return
	}
	draft, ok := f.state.Roster.Draft(mode)
	if !ok {
		return
	}
	f.state.Pending = &draft
	f.state.LastAddMode = mode
	if mode == ModeSameGroup {
		f.goTo(DraftDetails{})
		return
	}
	f.goTo(ParticipantDetails{Ref: DraftRef})
}

func (f *Flow) addAnother() {
	if !f.CanAddPerson() {
		return
	}
	if f.state.LastAddMode == ModeNone {
		f.goTo(AddPersonPrompt{})
		return
	}
	f.beginAdd(f.state.LastAddMode)
}

func (f *Flow) commitDraft() {
	if f.state.Pending != nil {
		f.state.Roster.Append(*f.state.Pending)
		f.state.Pending = nil
	}
	f.goTo(Summary{})
}

func (f *Flow) discardDraft() {
	f.state.Pending = nil
	f.goTo(AddPersonPrompt{})
}
