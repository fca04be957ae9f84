package bot

import (
	"context"
	"errors"
	"fmt"

	"twa-games-backend/internal/bot/session"
	"twa-games-backend/internal/common/logger"
	userservice "twa-games-backend/internal/features/user/service"
	"twa-games-backend/internal/platform/telegram"
)

// handleStart routes /start: registered users get the main menu, everyone
// else enters the registration flow.
func (b *Bot) handleStart(ctx context.Context, msg *telegram.Message) {
	user, err := b.users.GetUser(ctx, msg.From.ID)
	if err == nil {
		welcome := fmt.Sprintf(text(welcomeBackTexts, user.Language), msg.From.FirstName)
		b.send(ctx, msg.Chat.ID, welcome, b.mainMenuKeyboard(user.Language))
		return
	}
	if !errors.Is(err, userservice.ErrUserNotFound) {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to look up user")
		return
	}

	sess := &session.Session{State: session.StateAwaitingLanguage}
	if err := b.sessions.Put(ctx, msg.From.ID, sess); err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to store session")
		return
	}

	b.send(ctx, msg.Chat.ID, chooseLanguageText, languageKeyboard())
}

// handleRegistrationStep advances the state machine by one input. Input that
// does not fit the current step re-prompts it.
func (b *Bot) handleRegistrationStep(ctx context.Context, msg *telegram.Message, sess *session.Session) {
	switch sess.State {
	case session.StateAwaitingLanguage:
		b.stepLanguage(ctx, msg, sess)
	case session.StateAwaitingName:
		b.stepName(ctx, msg, sess)
	case session.StateAwaitingContact:
		b.stepContact(ctx, msg, sess)
	default:
		// Unknown state, likely from an older build. Restart the flow.
		if err := b.sessions.Delete(ctx, msg.From.ID); err != nil {
			logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to clear session")
		}
	}
}

func (b *Bot) stepLanguage(ctx context.Context, msg *telegram.Message, sess *session.Session) {
	if msg.Text == "" {
		b.send(ctx, msg.Chat.ID, chooseLanguageText, languageKeyboard())
		return
	}

	sess.Language = languageFromLabel(msg.Text)
	sess.State = session.StateAwaitingName
	if err := b.sessions.Put(ctx, msg.From.ID, sess); err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to store session")
		return
	}

	b.send(ctx, msg.Chat.ID, text(askNameTexts, sess.Language), removeKeyboard())
}

func (b *Bot) stepName(ctx context.Context, msg *telegram.Message, sess *session.Session) {
	if msg.Text == "" {
		b.send(ctx, msg.Chat.ID, text(askNameTexts, sess.Language), nil)
		return
	}

	sess.FullName = msg.Text
	sess.State = session.StateAwaitingContact
	if err := b.sessions.Put(ctx, msg.From.ID, sess); err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to store session")
		return
	}

	b.send(ctx, msg.Chat.ID, text(askContactTexts, sess.Language), contactKeyboard())
}

func (b *Bot) stepContact(ctx context.Context, msg *telegram.Message, sess *session.Session) {
	if msg.Contact == nil || msg.Contact.PhoneNumber == "" {
		b.send(ctx, msg.Chat.ID, text(askContactTexts, sess.Language), contactKeyboard())
		return
	}

	err := b.users.Register(ctx, msg.From.ID, msg.From.Username, sess.FullName,
		msg.Contact.PhoneNumber, sess.Language)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to register user")
		return
	}

	if err := b.sessions.Delete(ctx, msg.From.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to clear session")
	}

	b.send(ctx, msg.Chat.ID, text(registeredTexts, sess.Language), b.mainMenuKeyboard(sess.Language))
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup interface{}) {
	if err := b.sender.SendMessage(ctx, chatID, text, markup); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
