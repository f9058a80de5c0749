package log

import (
	"github.com/underground-music/intake/internal/intake"
)

// FromTransition maps a flow transition to a journal event.
func FromTransition(st *intake.State, t intake.Transition) LogEvent {
	e := LogEvent{
		Event:        EventStepChanged,
		From:         t.From.Name(),
		Step:         t.To.Name(),
		ClassType:    string(st.ClassType),
		Participants: t.Participants,
	}
	switch t.Event.(type) {
	case intake.Reset:
		e.Event = EventFlowReset
	case intake.SelectClassType:
		e.Event = EventClassSelected
	case intake.Finish:
		e.Event = EventHandoff
	default:
		switch {
		case t.Added:
			e.Event = EventParticipantAdded
			e.Mode = st.LastAddMode.String()
		case t.Discarded:
			e.Event = EventDraftDiscarded
		}
	}
	return e
}

// Recorder journals every transition of one session.
type Recorder struct {
	Logger  *Logger
	Session string
	Channel string
	// OnError receives append failures; nil ignores them.
	OnError func(error)
}

// Start records the session_started event.
func (r *Recorder) Start() {
	r.append(LogEvent{Event: EventSessionStarted})
}

// Observe returns an observer to register with Flow.Observe.
func (r *Recorder) Observe(f *intake.Flow) intake.Observer {
	return func(t intake.Transition) {
		r.append(FromTransition(f.State(), t))
	}
}

// Record appends e stamped with the session and channel.
func (r *Recorder) Record(e LogEvent) { r.append(e) }

func (r *Recorder) append(e LogEvent) {
	if r == nil {
		return
	}
	e.Session = r.Session
	e.Channel = r.Channel
	if err := r.Logger.Append(e); err != nil && r.OnError != nil {
		r.OnError(err)
	}
}
