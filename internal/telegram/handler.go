// Package telegram serves the intake flow as a Telegram bot. Each chat gets
// its own flow; buttons carry the choices and text messages fill the text
// fields.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/message"
	"github.com/underground-music/intake/internal/session"
	"github.com/underground-music/intake/prompts"
)

// ErrNoToken is returned by Run when no bot token is configured.
var ErrNoToken = errors.New("telegram token not configured")

// Sender is the part of the Bot API the handler uses. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Handler routes updates to per-chat flows.
type Handler struct {
	sender  Sender
	store   *session.Store
	render  Renderer
	journal *log.Logger
	log     zerolog.Logger
}

// NewHandler creates a Handler. A nil journal disables event journaling.
func NewHandler(cfg *config.Config, sender Sender, journal *log.Logger, logger zerolog.Logger) *Handler {
	cat := cfg.Catalog()
	newFlow := func() *intake.Flow {
		// No auto-advance delay in chat.
		return intake.NewFlow(intake.Options{
			Catalog:     cat,
			AdvisoryAge: cfg.Flow.KidsAdvisoryAge,
		})
	}
	return &Handler{
		sender:  sender,
		store:   session.NewStore(cfg.Telegram.SessionTTL(), newFlow),
		render:  Renderer{Cfg: cfg, Composer: message.Composer{School: cfg.School.Name, Catalog: cat}},
		journal: journal,
		log:     logger,
	}
}

// Store exposes the session registry.
func (h *Handler) Store() *session.Store { return h.store }

// Handle is a bot.HandlerFunc.
func (h *Handler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	h.HandleUpdate(ctx, update)
}

// HandleUpdate processes one update.
func (h *Handler) HandleUpdate(ctx context.Context, update *models.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.onCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		h.onMessage(ctx, update.Message)
	}
}

// acquire returns the chat's session, journaling it when new.
func (h *Handler) acquire(chatID int64) *session.Session {
	sess, created := h.store.Acquire(chatID)
	if created {
		rec := &log.Recorder{
			Logger:  h.journal,
			Session: sess.ID,
			Channel: log.ChannelTelegram,
			OnError: func(err error) {
				h.log.Warn().Err(err).Str("session", sess.ID).Msg("journal append failed")
			},
		}
		rec.Start()
		sess.Flow.Observe(rec.Observe(sess.Flow))
		h.log.Info().Int64("chat", chatID).Str("session", sess.ID).Msg("session started")
	}
	return sess
}

func (h *Handler) onMessage(ctx context.Context, msg *models.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/start":
		h.store.Delete(chatID)
	case "/help":
		h.send(ctx, chatID, Screen{Text: strings.TrimSpace(prompts.Help)})
		return
	}

	sess := h.acquire(chatID)
	sess.Lock()
	defer sess.Unlock()

	f := sess.Flow
	switch text {
	case "/start":
	case "/reset":
		f.Dispatch(intake.Reset{})
	case "/info":
		f.Dispatch(intake.ToggleInfo{})
	default:
		h.fill(f, text)
	}

	// The step message scrolled away; show the step again below.
	sess.MessageID = h.send(ctx, chatID, h.render.Render(f))
}

// fill writes text into the first empty text field and moves on once the
// step is complete.
func (h *Handler) fill(f *intake.Flow, text string) {
	if f.InfoVisible() {
		return
	}
	field, ok := textTarget(f)
	if !ok {
		return
	}
	f.Dispatch(setEvent(field, text))
	if _, more := textTarget(f); !more && f.CanAdvance() {
		f.Dispatch(intake.Advance{})
	}
}

func (h *Handler) onCallback(ctx context.Context, q *models.CallbackQuery) {
	if _, err := h.sender.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: q.ID}); err != nil {
		h.log.Warn().Err(err).Msg("answering callback query")
	}

	chatID := q.From.ID
	messageID := 0
	if m := q.Message.Message; m != nil {
		chatID = m.Chat.ID
		messageID = m.ID
	}

	e, err := ParseCallback(q.Data)
	if err != nil {
		h.log.Warn().Err(err).Int64("chat", chatID).Msg("ignoring callback")
		return
	}

	sess := h.acquire(chatID)
	sess.Lock()
	defer sess.Unlock()

	if _, ok := sess.Flow.Dispatch(e).(intake.Handoff); ok {
		h.log.Info().Str("session", sess.ID).Int("participants", sess.Flow.State().Roster.Len()).Msg("handoff")
		h.send(ctx, chatID, h.render.Handoff(sess.Flow))
		return
	}

	screen := h.render.Render(sess.Flow)
	if messageID != 0 && messageID == sess.MessageID {
		h.edit(ctx, chatID, messageID, screen)
		return
	}
	sess.MessageID = h.send(ctx, chatID, screen)
}

// send posts screen and returns the new message id, or 0 on failure.
func (h *Handler) send(ctx context.Context, chatID int64, s Screen) int {
	params := &bot.SendMessageParams{ChatID: chatID, Text: s.Text}
	if s.Markup != nil {
		params.ReplyMarkup = s.Markup
	}
	m, err := h.sender.SendMessage(ctx, params)
	if err != nil {
		h.log.Error().Err(err).Int64("chat", chatID).Msg("sending message")
		return 0
	}
	return m.ID
}

func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, s Screen) {
	params := &bot.EditMessageTextParams{ChatID: chatID, MessageID: messageID, Text: s.Text}
	if s.Markup != nil {
		params.ReplyMarkup = s.Markup
	}
	if _, err := h.sender.EditMessageText(ctx, params); err != nil {
		h.log.Warn().Err(err).Int64("chat", chatID).Int("message", messageID).Msg("editing message")
	}
}

// Run starts the bot and blocks until ctx is done.
func Run(ctx context.Context, cfg *config.Config, journal *log.Logger, logger zerolog.Logger) error {
	if cfg.Telegram.Token == "" {
		return ErrNoToken
	}

	h := NewHandler(cfg, nil, journal, logger)
	b, err := bot.New(cfg.Telegram.Token, bot.WithDefaultHandler(h.Handle))
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}
	h.sender = b

	go h.store.PruneEvery(ctx, time.Minute, func(removed []*session.Session) {
		logger.Info().Int("sessions", len(removed)).Msg("pruned idle sessions")
	})

	logger.Info().Str("school", cfg.School.Name).Msg("bot started")
	b.Start(ctx)
	logger.Info().Msg("bot stopped")
	return nil
}
