package answers

import (
	"fmt"
	"slices"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
)

// Replay feeds a through a new flow and returns it at the summary step.
// opts.AutoAdvance is ignored; the replay never waits.
func Replay(a *Answers, opts intake.Options) (*intake.Flow, error) {
	opts.AutoAdvance = 0
	r := &replayer{f: intake.NewFlow(opts)}
	if err := r.run(a); err != nil {
		return r.f, err
	}
	return r.f, nil
}

type replayer struct {
	f *intake.Flow
}

func (r *replayer) send(events ...intake.Event) {
	for _, e := range events {
		r.f.Dispatch(e)
	}
}

// advance moves forward and fails when the flow refuses to.
func (r *replayer) advance() error {
	from := r.f.Step()
	missing := r.f.Missing()
	r.f.Dispatch(intake.Advance{})
	if r.f.Step() == from {
		return &IncompleteError{Step: from.Name(), Missing: missing}
	}
	return nil
}

func (r *replayer) run(a *Answers) error {
	ct, err := catalog.ParseClassType(a.ClassType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(a.Participants) == 0 {
		return fmt.Errorf("%w: no participants", ErrInvalid)
	}
	r.send(intake.SelectClassType{Type: ct})

	opt, _ := r.f.Option()
	if len(a.Participants) > opt.MaxParticipants {
		return fmt.Errorf("%w: %s classes admit %d participants, got %d",
			ErrInvalid, ct, opt.MaxParticipants, len(a.Participants))
	}

	first := a.Participants[0]
	if opt.Guardian {
		g := a.Guardian
		if g == nil {
			g = &Guardian{}
		}
		r.send(
			intake.SetGuardianName{Value: g.Name},
			intake.SetChildName{Value: g.ChildName},
			intake.SetChildAge{Value: g.ChildAge},
		)
		if err := r.advance(); err != nil {
			return err
		}
	} else {
		r.send(intake.SetMainName{Value: a.MainName})
		if err := r.advance(); err != nil {
			return err
		}
		r.send(intake.SelectRecipient{ForSelf: a.forSelf()})
		if first.Name != "" {
			r.send(intake.SetName{Value: first.Name})
		}
		r.send(intake.SetAge{Value: first.Age})
		if err := r.advance(); err != nil {
			return err
		}
	}
	if err := r.preferences(1, first); err != nil {
		return err
	}

	for i, p := range a.Participants[1:] {
		n := i + 2
		if p.SameGroup {
			r.send(intake.AddSameGroup{})
		} else {
			r.send(intake.AddDifferentGroup{})
		}
		if _, ok := intake.RefOf(r.f.Step()); !ok {
			return fmt.Errorf("%w: participant %d cannot be added", ErrInvalid, n)
		}
		r.send(intake.SetName{Value: p.Name}, intake.SetAge{Value: p.Age})
		if err := r.advance(); err != nil {
			return fmt.Errorf("participant %d: %w", n, err)
		}
		if !p.SameGroup {
			if err := r.preferences(n, p); err != nil {
				return err
			}
		}
	}

	if _, ok := r.f.Step().(intake.AddPersonPrompt); ok {
		r.send(intake.DeclineAdd{})
	}
	if _, ok := r.f.Step().(intake.Summary); !ok {
		return &IncompleteError{Step: r.f.Step().Name(), Missing: r.f.Missing()}
	}
	return nil
}

func (r *replayer) preferences(n int, p Participant) error {
	wrap := func(err error) error {
		return fmt.Errorf("participant %d: %w", n, err)
	}

	for _, s := range p.Instruments {
		v, err := catalog.ParseInstrument(s)
		if err != nil {
			return wrap(fmt.Errorf("%w: %v", ErrInvalid, err))
		}
		r.send(intake.ToggleInstrument{Instrument: v})
	}
	if err := r.advance(); err != nil {
		return wrap(err)
	}

	for _, s := range p.Times {
		v, err := catalog.ParseTimePreference(s)
		if err != nil {
			return wrap(fmt.Errorf("%w: %v", ErrInvalid, err))
		}
		r.send(intake.ToggleTime{Time: v})
	}
	if err := r.advance(); err != nil {
		return wrap(err)
	}

	for _, s := range p.Weekdays {
		v, err := catalog.ParseWeekday(s)
		if err != nil {
			return wrap(fmt.Errorf("%w: %v", ErrInvalid, err))
		}
		r.send(intake.ToggleWeekday{Weekday: v})
	}
	if err := r.advance(); err != nil {
		return wrap(err)
	}
	return nil
}

// FromState converts a finished flow back into answers, e.g. to save a
// terminal session for later replay.
func FromState(st *intake.State, cat *catalog.Catalog) *Answers {
	a := &Answers{ClassType: string(st.ClassType)}
	opt, _ := cat.Option(st.ClassType)
	if opt.Guardian {
		a.Guardian = &Guardian{
			Name:      st.Guardian.Name,
			ChildName: st.Guardian.ChildName,
			ChildAge:  st.Guardian.ChildAge,
		}
	} else {
		a.MainName = st.MainName
		forSelf := st.ForSelf == intake.ForSelfYes
		a.ForSelf = &forSelf
	}

	people := st.Roster.Participants()
	for i, p := range people {
		ap := Participant{
			Name:        p.Name,
			Age:         p.Age,
			Instruments: names(p.Instruments.Items()),
			Times:       names(p.Times.Items()),
			Weekdays:    names(p.Weekdays.Items()),
		}
		if opt.Guardian {
			ap.Name, ap.Age = "", ""
		}
		if i > 0 && sameAsFirst(people[0], p) {
			ap.SameGroup = true
			ap.Instruments, ap.Times, ap.Weekdays = nil, nil, nil
		}
		a.Participants = append(a.Participants, ap)
	}
	return a
}

func names[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = string(v)
	}
	return out
}

func sameAsFirst(first, p intake.Participant) bool {
	return slices.Equal(first.Instruments.Items(), p.Instruments.Items()) &&
		slices.Equal(first.Times.Items(), p.Times.Items()) &&
		slices.Equal(first.Weekdays.Items(), p.Weekdays.Items())
}
