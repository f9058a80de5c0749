package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/tui"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, logger *log.Logger) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Flow.AutoAdvanceMs = 0
	a := New(cfg, logger)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

func send(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = a.Update(msg)
	}
	return cmd
}

func expectStep(t *testing.T, a *App, want intake.Step) {
	t.Helper()
	if got := a.Model().Flow.Step(); got != want {
		t.Fatalf("step: got %s %+v, want %s %+v", got.Name(), got, want.Name(), want)
	}
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestIndividualEnrollmentByKeyboard(t *testing.T) {
	a := newTestApp(t, nil)

	send(a, keyDown, keyEnter)
	expectStep(t, a, intake.CollectIdentity{})
	if a.Model().Flow.State().ClassType != catalog.Individual {
		t.Fatalf("class type: got %q", a.Model().Flow.State().ClassType)
	}

	send(a, runes("Ana"), keyEnter)
	expectStep(t, a, intake.ChooseRecipient{})

	send(a, keyEnter)
	expectStep(t, a, intake.ParticipantDetails{Ref: intake.Committed(0)})

	send(a, runes("25"), keyEnter)
	expectStep(t, a, intake.PickInstruments{Ref: intake.Committed(0)})

	send(a, keySpace, keyEnter)
	expectStep(t, a, intake.PickTimes{Ref: intake.Committed(0)})
	send(a, keySpace, keyEnter)
	expectStep(t, a, intake.PickWeekdays{Ref: intake.Committed(0)})
	send(a, keySpace, keyDown, keyDown, keySpace, keyEnter)
	expectStep(t, a, intake.Summary{})

	msg := a.Model().Message()
	for _, s := range []string{"Mi nombre es Ana", "- Nombre: Ana", "- Edad: 25 años", "Piano", "Lunes, Miércoles"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message missing %q:\n%s", s, msg)
		}
	}
	if !strings.Contains(a.View(), "Resumen de tu consulta:") {
		t.Errorf("summary view:\n%s", a.View())
	}

	if cmd := send(a, runes("o")); cmd == nil {
		t.Error("expected a command opening the link")
	}
	if !strings.Contains(a.Model().Status, "WhatsApp") {
		t.Errorf("status: got %q", a.Model().Status)
	}
}

func TestFormShowsFieldErrors(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyEnter, keyEnter)
	expectStep(t, a, intake.CollectIdentity{})

	if !strings.Contains(a.View(), "Por favor, ingresá tu nombre") {
		t.Errorf("missing name error in view:\n%s", a.View())
	}

	send(a, runes("A"))
	if strings.Contains(a.View(), "Por favor, ingresá tu nombre") {
		t.Error("error should clear once the field has a value")
	}
}

func TestAgeInputKeepsDigits(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyEnter, runes("Ana"), keyEnter, keyEnter)
	expectStep(t, a, intake.ParticipantDetails{Ref: intake.Committed(0)})

	send(a, runes("2"), runes("a"), runes("5"))
	if got := a.Model().Flow.Active().Age; got != "25" {
		t.Errorf("age: got %q, want 25", got)
	}
}

func TestGuardianFormMovesBetweenFields(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyDown, keyEnter)
	expectStep(t, a, intake.CollectIdentity{})

	send(a, runes("Marcos"), keyEnter, runes("Sofi"), keyEnter, runes("6"), keyEnter)
	expectStep(t, a, intake.PickInstruments{Ref: intake.Committed(0)})

	g := a.Model().Flow.State().Guardian
	if g.Name != "Marcos" || g.ChildName != "Sofi" || g.ChildAge != "6" {
		t.Errorf("guardian: %+v", g)
	}
}

func TestEscapeRetreats(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyEnter)
	expectStep(t, a, intake.CollectIdentity{})

	send(a, keyEsc)
	expectStep(t, a, intake.ChooseClassType{})
}

func TestGroupAddsSameGroupPerson(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyEnter, runes("Luz"), keyEnter, keyEnter, runes("30"), keyEnter)
	send(a, keySpace, keyEnter, keySpace, keyEnter, keySpace, keyEnter)
	expectStep(t, a, intake.AddPersonPrompt{})

	send(a, keyEnter)
	expectStep(t, a, intake.DraftDetails{})
	send(a, runes("Juan"), keyEnter, runes("28"), keyEnter)
	expectStep(t, a, intake.Summary{})

	if n := a.Model().Flow.State().Roster.Len(); n != 2 {
		t.Fatalf("roster: got %d people, want 2", n)
	}
	if !strings.Contains(a.View(), "Persona 2") {
		t.Errorf("summary should list both people:\n%s", a.View())
	}
}

func TestAutoAdvanceTick(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Flow.AutoAdvanceMs = 1
	a := New(cfg, nil)

	cmd := send(a, keyEnter)
	expectStep(t, a, intake.ChooseClassType{})
	if !a.Model().Flow.AdvancePending() {
		t.Fatal("expected a pending auto-advance")
	}

	var fired bool
	for _, msg := range collect(cmd) {
		if m, ok := msg.(tui.AutoAdvanceMsg); ok {
			send(a, m)
			fired = true
		}
	}
	if !fired {
		t.Fatal("no AutoAdvanceMsg delivered")
	}
	expectStep(t, a, intake.CollectIdentity{})
}

func TestInfoPanelBlocksInput(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyEnter)

	send(a, tea.KeyMsg{Type: tea.KeyF1})
	if !a.Model().Flow.InfoVisible() {
		t.Fatal("info panel should be visible")
	}
	if !strings.Contains(a.View(), "Volver") {
		t.Errorf("info view:\n%s", a.View())
	}

	send(a, tea.KeyMsg{Type: tea.KeyCtrlR}, runes("Ana"))
	expectStep(t, a, intake.CollectIdentity{})
	if a.Model().Flow.State().MainName != "" {
		t.Error("typing must not reach the form while the panel is shown")
	}

	send(a, keyEsc)
	if a.Model().Flow.InfoVisible() {
		t.Fatal("esc should close the info panel")
	}
	expectStep(t, a, intake.CollectIdentity{})
}

func TestResetReturnsToStart(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, keyDown, keyEnter, runes("Ana"), keyEnter)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	expectStep(t, a, intake.ChooseClassType{})
	if a.Model().Flow.State().MainName != "" {
		t.Error("reset should clear the contact name")
	}
}

func TestCtrlCNeedsTwoPresses(t *testing.T) {
	a := newTestApp(t, nil)
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}

	send(a, ctrlC)
	if !a.Model().CtrlCPending {
		t.Fatal("first ctrl+c should arm the exit")
	}
	send(a, tui.CtrlCResetMsg{})
	if a.Model().CtrlCPending {
		t.Fatal("timeout should disarm the exit")
	}

	send(a, ctrlC)
	cmd := send(a, ctrlC)
	if cmd == nil {
		t.Fatal("second ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHandoffDoneStatus(t *testing.T) {
	tests := []struct {
		name    string
		msg     tui.HandoffDoneMsg
		want    string
		isError bool
	}{
		{"opened", tui.HandoffDoneMsg{Action: tui.ActionOpen}, "Mensaje listo", false},
		{"copied", tui.HandoffDoneMsg{Action: tui.ActionCopy}, "Enlace copiado", false},
		{"open failed", tui.HandoffDoneMsg{Action: tui.ActionOpen, URL: "https://wa.me/1", Err: errors.New("no browser")}, "https://wa.me/1", true},
		{"copy failed", tui.HandoffDoneMsg{Action: tui.ActionCopy, Err: errors.New("no clipboard")}, "no clipboard", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, nil)
			send(a, tt.msg)
			m := a.Model()
			if !strings.Contains(m.Status, tt.want) || m.StatusErr != tt.isError {
				t.Errorf("status: got %q (error %v)", m.Status, m.StatusErr)
			}
		})
	}
}

func TestJournalRecordsSession(t *testing.T) {
	logger, err := log.NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	a := newTestApp(t, logger)
	send(a, keyDown, keyEnter, runes("Ana"), keyEnter)

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	var names []string
	for _, e := range events {
		if e.Channel != log.ChannelTerminal || e.Session == "" {
			t.Errorf("event not stamped: %+v", e)
		}
		names = append(names, e.Event)
	}
	want := []string{log.EventSessionStarted, log.EventClassSelected, log.EventStepChanged}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("events: got %v, want %v", names, want)
	}
}

func TestProgress(t *testing.T) {
	first := progress(intake.ChooseClassType{})
	last := progress(intake.Summary{})
	if strings.Count(first, "●") != 1 || strings.Count(last, "●") != len(stepOrder) {
		t.Errorf("progress: first %q, last %q", first, last)
	}
	if got := progress(intake.DraftDetails{}); got != last {
		t.Errorf("draft progress: got %q, want %q", got, last)
	}
}
