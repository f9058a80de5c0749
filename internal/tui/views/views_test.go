package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/tui"
)

func testEnv(f *intake.Flow) Env {
	return Env{
		Flow:     f,
		Dispatch: func(e intake.Event) tea.Cmd { f.Dispatch(e); return nil },
		Copy:     func() tea.Cmd { return nil },
		Keys:     tui.DefaultKeyMap,
	}
}

func TestForBuildsScreenPerStep(t *testing.T) {
	f := intake.NewFlow(intake.Options{})
	env := testEnv(f)

	if _, ok := For(env, 60).(*ChoiceModel); !ok {
		t.Fatal("class type step should be a choice")
	}
	f.Dispatch(intake.SelectClassType{Type: catalog.Individual})
	form, ok := For(env, 60).(*FormModel)
	if !ok {
		t.Fatal("identity step should be a form")
	}
	if got := form.Fields(); len(got) != 1 || got[0] != intake.FieldMainName {
		t.Errorf("identity fields: %v", got)
	}

	f.Dispatch(intake.SetMainName{Value: "Ana"})
	f.Dispatch(intake.Advance{})
	f.Dispatch(intake.SelectRecipient{ForSelf: true})
	details := For(env, 60).(*FormModel)
	if got := details.Fields(); len(got) != 1 || got[0] != intake.FieldAge {
		t.Errorf("self details should only ask the age, got %v", got)
	}
	if !strings.Contains(details.View(), "¿Cuál es tu edad?") {
		t.Errorf("details view:\n%s", details.View())
	}
}

func TestChecklistToggles(t *testing.T) {
	f := intake.NewFlow(intake.Options{})
	f.Dispatch(intake.SelectClassType{Type: catalog.Kids})
	f.Dispatch(intake.SetGuardianName{Value: "Marcos"})
	f.Dispatch(intake.SetChildName{Value: "Sofi"})
	f.Dispatch(intake.SetChildAge{Value: "6"})
	f.Dispatch(intake.Advance{})

	m := For(testEnv(f), 60)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !f.Active().Instruments.Has(catalog.Guitar) {
		t.Errorf("instruments: %v", f.Active().Instruments.Items())
	}
	if !strings.Contains(m.View(), tui.Checked+" 🎸 Guitarra") {
		t.Errorf("checklist view:\n%s", m.View())
	}
}

func TestDetailsFormAdvisoryFollowsTypedAge(t *testing.T) {
	f := intake.NewFlow(intake.Options{})
	f.Dispatch(intake.SelectClassType{Type: catalog.Individual})
	f.Dispatch(intake.SetMainName{Value: "Ana"})
	f.Dispatch(intake.Advance{})
	f.Dispatch(intake.SelectRecipient{ForSelf: true})

	m := For(testEnv(f), 60)
	if strings.Contains(m.View(), "Para menores de") {
		t.Fatalf("advisory shown before any age:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("6")})
	if !strings.Contains(m.View(), "Para menores de") {
		t.Errorf("advisory missing after typing 6:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	if strings.Contains(m.View(), "Para menores de") {
		t.Errorf("advisory still shown for age 60:\n%s", m.View())
	}
}
