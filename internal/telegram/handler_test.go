package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
)

const chat int64 = 1001

type fakeSender struct {
	mu       sync.Mutex
	nextID   int
	sent     []*bot.SendMessageParams
	edits    []*bot.EditMessageTextParams
	answered int

	// last is the markup of the most recent send or edit.
	lastText   string
	lastMarkup models.ReplyMarkup
}

func (f *fakeSender) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, p)
	f.lastText, f.lastMarkup = p.Text, p.ReplyMarkup
	return &models.Message{ID: f.nextID, Text: p.Text}, nil
}

func (f *fakeSender) EditMessageText(_ context.Context, p *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, p)
	f.lastText, f.lastMarkup = p.Text, p.ReplyMarkup
	return &models.Message{ID: p.MessageID, Text: p.Text}, nil
}

func (f *fakeSender) AnswerCallbackQuery(context.Context, *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered++
	return true, nil
}

func (f *fakeSender) buttons() []models.InlineKeyboardButton {
	kb, ok := f.lastMarkup.(*models.InlineKeyboardMarkup)
	if !ok {
		return nil
	}
	var out []models.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

type harness struct {
	t      *testing.T
	h      *Handler
	sender *fakeSender
}

func newHarness(t *testing.T, journal *log.Logger) *harness {
	t.Helper()
	sender := &fakeSender{}
	h := NewHandler(config.DefaultConfig(), sender, journal, zerolog.Nop())
	return &harness{t: t, h: h, sender: sender}
}

func (x *harness) text(s string) {
	x.h.HandleUpdate(context.Background(), &models.Update{
		Message: &models.Message{Chat: models.Chat{ID: chat}, Text: s},
	})
}

func (x *harness) tap(data string) {
	msgID := 0
	if sess := x.h.Store().Get(chat); sess != nil {
		msgID = sess.MessageID
	}
	x.h.HandleUpdate(context.Background(), &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "q",
			From: models.User{ID: chat},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: msgID, Chat: models.Chat{ID: chat}},
			},
			Data: data,
		},
	})
}

func (x *harness) flow() *intake.Flow {
	x.t.Helper()
	sess := x.h.Store().Get(chat)
	if sess == nil {
		x.t.Fatal("no session for chat")
	}
	return sess.Flow
}

func (x *harness) expectStep(want intake.Step) {
	x.t.Helper()
	if got := x.flow().Step(); got != want {
		x.t.Fatalf("step: got %s %+v, want %s %+v", got.Name(), got, want.Name(), want)
	}
}

func TestIndividualEnrollment(t *testing.T) {
	x := newHarness(t, nil)

	x.text("/start")
	x.expectStep(intake.ChooseClassType{})
	if !strings.Contains(x.sender.lastText, "Elegí tu modalidad de clase") {
		t.Fatalf("welcome screen:\n%s", x.sender.lastText)
	}

	x.tap("class:individual")
	x.expectStep(intake.CollectIdentity{})
	if len(x.sender.edits) != 1 {
		t.Errorf("tapping on the step message should edit it, got %d edits", len(x.sender.edits))
	}

	x.text("Ana")
	x.expectStep(intake.ChooseRecipient{})
	x.tap("recipient:self")
	x.expectStep(intake.ParticipantDetails{Ref: intake.Committed(0)})
	x.text("25")
	x.expectStep(intake.PickInstruments{Ref: intake.Committed(0)})

	x.tap("inst:piano")
	x.tap("nav:next")
	x.tap("time:morning")
	x.tap("nav:next")
	x.tap("day:monday")
	x.tap("day:wednesday")
	x.tap("nav:next")
	x.expectStep(intake.Summary{})
	if !strings.Contains(x.sender.lastText, "Resumen de tu consulta") {
		t.Errorf("summary screen:\n%s", x.sender.lastText)
	}

	x.tap("finish")
	var url string
	for _, b := range x.sender.buttons() {
		if b.URL != "" {
			url = b.URL
		}
	}
	if !strings.HasPrefix(url, "https://wa.me/5492657659078?text=") {
		t.Fatalf("handoff button URL: %q", url)
	}
	if !strings.Contains(url, "Mi%20nombre%20es%20Ana") {
		t.Errorf("link does not carry the message: %s", url)
	}
	if !strings.Contains(x.sender.lastText, "Lunes, Miércoles") {
		t.Errorf("handoff text:\n%s", x.sender.lastText)
	}
}

func TestKidsIdentityFillsFieldsInOrder(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.tap("class:kids")

	x.text("Marcos")
	if !strings.Contains(x.sender.lastText, "Escribí: Nombre del niño/a") {
		t.Errorf("should ask for the child's name next:\n%s", x.sender.lastText)
	}
	x.text("Sofi")
	x.text("6 años")
	x.expectStep(intake.PickInstruments{Ref: intake.Committed(0)})

	g := x.flow().State().Guardian
	if g.Name != "Marcos" || g.ChildName != "Sofi" || g.ChildAge != "6" {
		t.Errorf("guardian: %+v", g)
	}
}

func TestAdvanceWithMissingFieldShowsError(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.tap("class:group")
	x.tap("nav:next")

	x.expectStep(intake.CollectIdentity{})
	if !strings.Contains(x.sender.lastText, "⚠️ Por favor, ingresá tu nombre") {
		t.Errorf("missing error on screen:\n%s", x.sender.lastText)
	}
}

func TestGroupAddsPersonFromPrompt(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.tap("class:group")
	x.text("Luz")
	x.tap("recipient:self")
	x.text("30")
	for _, d := range []string{"inst:guitar", "nav:next", "time:evening", "nav:next", "day:tuesday", "nav:next"} {
		x.tap(d)
	}
	x.expectStep(intake.AddPersonPrompt{})

	x.tap("add:same")
	x.expectStep(intake.DraftDetails{})
	x.text("Juan")
	x.text("28")
	x.expectStep(intake.Summary{})

	people := x.flow().State().Roster.Participants()
	if len(people) != 2 || !people[1].Instruments.Has(catalog.Guitar) {
		t.Errorf("roster: %+v", people)
	}
}

func TestStartResetsSession(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.tap("class:individual")
	first := x.h.Store().Get(chat).ID

	x.text("/start")
	x.expectStep(intake.ChooseClassType{})
	if x.h.Store().Get(chat).ID == first {
		t.Error("/start should open a new session")
	}
}

func TestInfoCommand(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.text("/info")
	if !x.flow().InfoVisible() {
		t.Fatal("info panel should be visible")
	}
	if !strings.Contains(x.sender.lastText, "General Paz 274") || strings.Contains(x.sender.lastText, "**") {
		t.Errorf("info text:\n%s", x.sender.lastText)
	}

	x.text("Ana")
	x.tap("info")
	if x.flow().InfoVisible() {
		t.Error("info button should close the panel")
	}
	x.expectStep(intake.ChooseClassType{})
}

func TestHelpCommand(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/help")
	if !strings.Contains(x.sender.lastText, "Completá el formulario") {
		t.Errorf("help text:\n%s", x.sender.lastText)
	}
	if x.h.Store().Len() != 0 {
		t.Error("/help should not open a session")
	}
}

func TestUnknownCallbackIsAnsweredAndIgnored(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	sent := len(x.sender.sent)

	x.tap("bogus")
	if x.sender.answered != 1 {
		t.Errorf("callback should be answered, got %d answers", x.sender.answered)
	}
	if len(x.sender.sent) != sent || len(x.sender.edits) != 0 {
		t.Error("unknown callback should not update the chat")
	}
}

func TestStaleMessageGetsNewScreen(t *testing.T) {
	x := newHarness(t, nil)
	x.text("/start")
	x.text("/start")
	sent := len(x.sender.sent)

	// A tap on a message that is not the session's step message.
	x.h.HandleUpdate(context.Background(), &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:      "q",
			From:    models.User{ID: chat},
			Message: models.MaybeInaccessibleMessage{Message: &models.Message{ID: 1, Chat: models.Chat{ID: chat}}},
			Data:    "class:group",
		},
	})
	if len(x.sender.sent) != sent+1 {
		t.Errorf("expected a fresh message, sent %d -> %d", sent, len(x.sender.sent))
	}
	if got := x.h.Store().Get(chat).MessageID; got != x.sender.nextID {
		t.Errorf("MessageID: got %d, want %d", got, x.sender.nextID)
	}
}

func TestJournalStampsTelegramChannel(t *testing.T) {
	journal, err := log.NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	x := newHarness(t, journal)
	x.text("/start")
	x.tap("class:individual")

	events, err := journal.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2: %+v", len(events), events)
	}
	for _, e := range events {
		if e.Channel != log.ChannelTelegram || e.Session != x.h.Store().Get(chat).ID {
			t.Errorf("event not stamped: %+v", e)
		}
	}
	if events[1].Event != log.EventClassSelected {
		t.Errorf("second event: got %s", events[1].Event)
	}
}

func TestRunWithoutToken(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Telegram.Token = ""
	if err := Run(context.Background(), cfg, nil, zerolog.Nop()); !errors.Is(err, ErrNoToken) {
		t.Errorf("Run: got %v, want ErrNoToken", err)
	}
}
