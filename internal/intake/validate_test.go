package intake

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/underground-music/intake/internal/catalog"
)

func TestValidatorMissing(t *testing.T) {
	v := Validator{Catalog: catalog.Default()}

	full := Participant{
		Name:        "Ana",
		Age:         "20",
		Instruments: NewSet(catalog.Piano),
		Times:       NewSet(catalog.Morning),
		Weekdays:    NewSet(catalog.Monday),
	}

	tests := []struct {
		name  string
		state func() *State
		step  Step
		want  []Field
	}{
		{
			name:  "individual identity empty",
			state: func() *State { return &State{ClassType: catalog.Individual} },
			step:  CollectIdentity{},
			want:  []Field{FieldMainName},
		},
		{
			name:  "whitespace name is empty",
			state: func() *State { return &State{ClassType: catalog.Group, MainName: "   "} },
			step:  CollectIdentity{},
			want:  []Field{FieldMainName},
		},
		{
			name: "kids identity partial",
			state: func() *State {
				return &State{ClassType: catalog.Kids, Guardian: Guardian{ChildName: "Sofi"}}
			},
			step: CollectIdentity{},
			want: []Field{FieldGuardianName, FieldChildAge},
		},
		{
			name: "details for self exempt name",
			state: func() *State {
				st := &State{ClassType: catalog.Group, ForSelf: ForSelfYes, Roster: NewRoster(3)}
				st.Roster.Append(Participant{})
				return st
			},
			step: ParticipantDetails{Ref: Committed(0)},
			want: []Field{FieldAge},
		},
		{
			name: "details for other",
			state: func() *State {
				st := &State{ClassType: catalog.Group, ForSelf: ForSelfNo, Roster: NewRoster(3)}
				st.Roster.Append(Participant{})
				return st
			},
			step: ParticipantDetails{Ref: Committed(0)},
			want: []Field{FieldName, FieldAge},
		},
		{
			name:  "details without participant",
			state: func() *State { return &State{ClassType: catalog.Group, Roster: NewRoster(3)} },
			step:  ParticipantDetails{Ref: DraftRef},
			want:  []Field{FieldName, FieldAge},
		},
		{
			name: "draft details require name",
			state: func() *State {
				return &State{ClassType: catalog.Group, ForSelf: ForSelfYes, Pending: &Participant{Age: "9"}}
			},
			step: DraftDetails{},
			want: []Field{FieldName},
		},
		{
			name: "complete participant",
			state: func() *State {
				st := &State{ClassType: catalog.Individual, ForSelf: ForSelfNo, Roster: NewRoster(1)}
				st.Roster.Append(full.Clone())
				return st
			},
			step: PickWeekdays{Ref: Committed(0)},
		},
		{
			name: "empty sets",
			state: func() *State {
				st := &State{ClassType: catalog.Individual, Roster: NewRoster(1)}
				st.Roster.Append(Participant{Name: "Ana", Age: "20"})
				return st
			},
			step: PickTimes{Ref: Committed(0)},
			want: []Field{FieldTimes},
		},
		{
			name:  "summary never misses",
			state: func() *State { return &State{} },
			step:  Summary{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Missing(tt.state(), tt.step)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidatorAdvisorySkipsGuardianClass(t *testing.T) {
	v := Validator{Catalog: catalog.Default(), AdvisoryAge: 8}
	st := &State{ClassType: catalog.Kids, Roster: NewRoster(1)}
	st.Roster.Append(Participant{Age: "5"})
	if v.Advisory(st, Committed(0)) {
		t.Error("kids class must not advise itself")
	}
}

func TestValidatorAdvisoryDefaultAge(t *testing.T) {
	v := Validator{Catalog: catalog.Default()}
	st := &State{ClassType: catalog.Individual, Roster: NewRoster(1)}
	st.Roster.Append(Participant{Age: "8"})
	if !v.Advisory(st, Committed(0)) {
		t.Error("age 8 should be advised with the default limit")
	}
}

func TestNameRequired(t *testing.T) {
	tests := []struct {
		forSelf ForSelf
		ref     Ref
		want    bool
	}{
		{ForSelfYes, Committed(0), false},
		{ForSelfYes, Committed(1), true},
		{ForSelfYes, DraftRef, true},
		{ForSelfNo, Committed(0), true},
		{ForSelfUnset, Committed(0), true},
	}
	for _, tt := range tests {
		st := &State{ForSelf: tt.forSelf}
		if got := NameRequired(st, tt.ref); got != tt.want {
			t.Errorf("NameRequired(%v, %v) = %v, want %v", tt.forSelf, tt.ref, got, tt.want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := digits("1a2 b3"); got != "123" {
		t.Errorf("digits: got %q, want 123", got)
	}
}
