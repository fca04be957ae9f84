// Package bot drives the conversational front end: the registration state
// machine and the admin review panel, both on top of the Bot API client.
package bot

import (
	"context"
	"strings"
	"time"

	"twa-games-backend/internal/bot/session"
	"twa-games-backend/internal/common/logger"
	adminservice "twa-games-backend/internal/features/admin/service"
	userservice "twa-games-backend/internal/features/user/service"
	"twa-games-backend/internal/platform/telegram"
)

// Sender is the outbound half of the Bot API client. Narrowed to an
// interface so handler tests can capture messages.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error
}

// Updater is the inbound half, satisfied by *telegram.Client.
type Updater interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

type Bot struct {
	sender      Sender
	updater     Updater
	sessions    session.Store
	users       userservice.UserService
	admin       adminservice.AdminService
	webAppURL   string
	pollTimeout int
}

func New(sender Sender, updater Updater, sessions session.Store, users userservice.UserService,
	admin adminservice.AdminService, webAppURL string, pollTimeout int) *Bot {

	return &Bot{
		sender:      sender,
		updater:     updater,
		sessions:    sessions,
		users:       users,
		admin:       admin,
		webAppURL:   webAppURL,
		pollTimeout: pollTimeout,
	}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := b.updater.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Err(err).Msg("Failed to get updates")
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Errors are logged, never returned: a
// failed handler must not stall the poll loop.
func (b *Bot) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil {
		return
	}

	switch {
	case msg.Text == "/start":
		b.handleStart(ctx, msg)
	case msg.Text == "/admin":
		b.handleAdminPanel(ctx, msg)
	default:
		b.handleSessionOrMenu(ctx, msg)
	}
}

func (b *Bot) handleSessionOrMenu(ctx context.Context, msg *telegram.Message) {
	sess, err := b.sessions.Get(ctx, msg.From.ID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to load session")
		return
	}
	if sess != nil {
		b.handleRegistrationStep(ctx, msg, sess)
		return
	}

	if isSupportButton(msg.Text) {
		b.handleSupport(ctx, msg)
		return
	}

	// Free-text outside any flow is ignored.
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	data := cb.Data

	switch {
	case data == "admin_users":
		b.handleAdminUsers(ctx, cb)
	case data == "admin_games":
		b.handleAdminGames(ctx, cb)
	case data == "admin_requests":
		b.handleAdminRequests(ctx, cb)
	case data == "admin_back":
		b.handleAdminBack(ctx, cb)
	case strings.HasPrefix(data, "approve_"):
		b.handleResolve(ctx, cb, true)
	case strings.HasPrefix(data, "reject_"):
		b.handleResolve(ctx, cb, false)
	}
}

func (b *Bot) handleSupport(ctx context.Context, msg *telegram.Message) {
	lang := b.users.Language(ctx, msg.From.ID, defaultLang)

	if err := b.sender.SendMessage(ctx, msg.Chat.ID, text(supportTexts, lang), nil); err != nil {
		logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to send support text")
	}
}
