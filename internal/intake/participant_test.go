package intake

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/underground-music/intake/internal/catalog"
)

func TestSetToggle(t *testing.T) {
	var s Set[catalog.Weekday]
	if !s.Empty() {
		t.Fatal("zero set should be empty")
	}
	if !s.Toggle(catalog.Friday) {
		t.Error("Toggle should report selected on add")
	}
	s.Toggle(catalog.Monday)
	s.Toggle(catalog.Wednesday)
	if s.Toggle(catalog.Monday) {
		t.Error("Toggle should report unselected on remove")
	}

	want := []catalog.Weekday{catalog.Friday, catalog.Wednesday}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSetDropsDuplicates(t *testing.T) {
	s := NewSet(catalog.Piano, catalog.Bass, catalog.Piano)
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := NewSet(catalog.Morning)
	c := s.Clone()
	c.Toggle(catalog.Evening)
	if s.Has(catalog.Evening) {
		t.Error("clone shares storage with the original")
	}
}

func TestRosterLimit(t *testing.T) {
	r := NewRoster(2)
	for i, want := range []bool{true, true, false} {
		if got := r.Append(Participant{Name: "p"}); got != want {
			t.Errorf("Append #%d: got %v, want %v", i+1, got, want)
		}
	}
	if r.Len() != 2 || !r.Full() {
		t.Errorf("roster: len=%d full=%v", r.Len(), r.Full())
	}
	if r.At(2) != nil || r.At(-1) != nil {
		t.Error("At out of range should be nil")
	}
}

func TestNewRosterMinimumLimit(t *testing.T) {
	r := NewRoster(0)
	if r.Limit() != 1 {
		t.Errorf("Limit: got %d, want 1", r.Limit())
	}
}

func TestRosterDraft(t *testing.T) {
	r := NewRoster(3)
	r.Append(Participant{
		Name:        "Luz",
		Age:         "30",
		Instruments: NewSet(catalog.Guitar),
		Times:       NewSet(catalog.Evening),
		Weekdays:    NewSet(catalog.Tuesday),
	})

	same, ok := r.Draft(ModeSameGroup)
	if !ok {
		t.Fatal("same-group draft refused")
	}
	if same.Name != "" || same.Age != "" {
		t.Errorf("draft should not inherit identity: %+v", same)
	}
	if !same.Instruments.Has(catalog.Guitar) || !same.Weekdays.Has(catalog.Tuesday) {
		t.Errorf("draft should inherit preferences: %+v", same)
	}

	diff, ok := r.Draft(ModeDifferentGroup)
	if !ok || !diff.Instruments.Empty() || !diff.Times.Empty() || !diff.Weekdays.Empty() {
		t.Errorf("different-group draft: %+v ok=%v", diff, ok)
	}

	if _, ok := r.Draft(ModeNone); ok {
		t.Error("ModeNone must not draft")
	}
}

func TestRosterDraftWhenFull(t *testing.T) {
	r := NewRoster(1)
	r.Append(Participant{Name: "solo"})
	if _, ok := r.Draft(ModeSameGroup); ok {
		t.Error("full roster must not draft")
	}
}

func TestRosterParticipantsCopies(t *testing.T) {
	r := NewRoster(1)
	r.Append(Participant{Name: "Ana", Instruments: NewSet(catalog.Piano)})

	ps := r.Participants()
	ps[0].Name = "changed"
	ps[0].Instruments.Toggle(catalog.Drums)

	if r.At(0).Name != "Ana" || r.At(0).Instruments.Has(catalog.Drums) {
		t.Error("Participants must return copies")
	}
}

func TestAgeYears(t *testing.T) {
	tests := []struct {
		age    string
		want   int
		wantOK bool
	}{
		{"", 0, false},
		{"12", 12, true},
		{" 7 ", 7, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := Participant{Age: tt.age}.AgeYears()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("AgeYears(%q) = %d, %v; want %d, %v", tt.age, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAddModeString(t *testing.T) {
	tests := map[AddMode]string{
		ModeNone:           "none",
		ModeSameGroup:      "same_group",
		ModeDifferentGroup: "different_group",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", m, got, want)
		}
	}
}
