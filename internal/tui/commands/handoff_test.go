package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/underground-music/intake/internal/tui"
)

func TestOpenLinkCmd(t *testing.T) {
	old := openURL
	defer func() { openURL = old }()

	var opened string
	openURL = func(url string) error {
		opened = url
		return nil
	}

	msg := OpenLinkCmd("https://wa.me/1?text=hola")()
	done, ok := msg.(tui.HandoffDoneMsg)
	if !ok {
		t.Fatalf("got %T, want HandoffDoneMsg", msg)
	}
	if done.Action != tui.ActionOpen || done.Err != nil || opened != done.URL {
		t.Errorf("unexpected result %+v (opened %q)", done, opened)
	}
}

func TestCopyLinkCmdReportsError(t *testing.T) {
	old := copyText
	defer func() { copyText = old }()

	boom := errors.New("no clipboard")
	copyText = func(string) error { return boom }

	done := CopyLinkCmd("https://wa.me/1")().(tui.HandoffDoneMsg)
	if done.Action != tui.ActionCopy || !errors.Is(done.Err, boom) {
		t.Errorf("unexpected result %+v", done)
	}
}

func TestAutoAdvanceCmd(t *testing.T) {
	msg := AutoAdvanceCmd(7, time.Millisecond)()
	if got, ok := msg.(tui.AutoAdvanceMsg); !ok || got.Token != 7 {
		t.Errorf("got %#v, want AutoAdvanceMsg{7}", msg)
	}
}
