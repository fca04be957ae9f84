package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"twa-games-backend/internal/common/logger"
	adminservice "twa-games-backend/internal/features/admin/service"
	promodels "twa-games-backend/internal/features/prorequest/models"
	"twa-games-backend/internal/platform/telegram"
)

func (b *Bot) handleAdminPanel(ctx context.Context, msg *telegram.Message) {
	if !b.admin.IsAdmin(msg.From.ID) {
		b.send(ctx, msg.Chat.ID, accessDeniedText, nil)
		return
	}

	b.send(ctx, msg.Chat.ID, adminPanelText, adminKeyboard())
}

func (b *Bot) handleAdminUsers(ctx context.Context, cb *telegram.CallbackQuery) {
	stats, err := b.admin.UserStats(ctx, cb.From.ID)
	if err != nil {
		b.answerAdminError(ctx, cb, err)
		return
	}

	text := fmt.Sprintf(
		"👥 User Statistics:\n\nTotal Users: %d\nPro Users: %d\nFree Users: %d",
		stats.Total, stats.Pro, stats.Free())

	b.editMessage(ctx, cb, text, adminKeyboard())
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleAdminGames(ctx context.Context, cb *telegram.CallbackQuery) {
	stats, err := b.admin.GameStats(ctx, cb.From.ID)
	if err != nil {
		b.answerAdminError(ctx, cb, err)
		return
	}

	text := fmt.Sprintf(
		"🎮 Games Statistics:\n\nTotal Games: %d\nTotal Plays: %d",
		stats.Total, stats.TotalPlays)

	b.editMessage(ctx, cb, text, adminKeyboard())
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleAdminRequests(ctx context.Context, cb *telegram.CallbackQuery) {
	requests, err := b.admin.PendingRequests(ctx, cb.From.ID)
	if err != nil {
		b.answerAdminError(ctx, cb, err)
		return
	}

	b.renderPendingRequests(ctx, cb, requests)
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) handleAdminBack(ctx context.Context, cb *telegram.CallbackQuery) {
	if !b.admin.IsAdmin(cb.From.ID) {
		b.answerCallback(ctx, cb.ID, deniedAlertText, true)
		return
	}

	b.editMessage(ctx, cb, adminPanelText, adminKeyboard())
	b.answerCallback(ctx, cb.ID, "", false)
}

// handleResolve settles an approve_<id> or reject_<id> callback and
// re-renders the pending list.
func (b *Bot) handleResolve(ctx context.Context, cb *telegram.CallbackQuery, approved bool) {
	parts := strings.SplitN(cb.Data, "_", 2)
	if len(parts) != 2 {
		return
	}
	requestID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return
	}

	if approved {
		err = b.admin.Approve(ctx, cb.From.ID, requestID)
	} else {
		err = b.admin.Reject(ctx, cb.From.ID, requestID)
	}
	if err != nil {
		b.answerAdminError(ctx, cb, err)
		return
	}

	ack := approvedAckText
	if !approved {
		ack = rejectedAckText
	}
	b.answerCallback(ctx, cb.ID, ack, false)

	requests, err := b.admin.PendingRequests(ctx, cb.From.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to reload pending requests")
		return
	}
	b.renderPendingRequests(ctx, cb, requests)
}

func (b *Bot) renderPendingRequests(ctx context.Context, cb *telegram.CallbackQuery, requests []promodels.PendingRequest) {
	if len(requests) == 0 {
		b.editMessage(ctx, cb, noPendingText, adminKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("⭐ Pending Pro Requests:\n\n")
	for _, req := range requests {
		fmt.Fprintf(&sb, "• %s (@%d)\n  Requested: %s\n\n",
			req.FullName, req.UserID, req.RequestedAt.Format("2006-01-02 15:04:05"))
	}

	b.editMessage(ctx, cb, sb.String(), pendingRequestsKeyboard(requests))
}

func (b *Bot) answerAdminError(ctx context.Context, cb *telegram.CallbackQuery, err error) {
	if errors.Is(err, adminservice.ErrPermissionDenied) {
		b.answerCallback(ctx, cb.ID, deniedAlertText, true)
		return
	}

	logger.Error().Err(err).Str("callback", cb.Data).Msg("Admin operation failed")
	b.answerCallback(ctx, cb.ID, "Something went wrong", true)
}

func (b *Bot) editMessage(ctx context.Context, cb *telegram.CallbackQuery, text string, markup *telegram.InlineKeyboardMarkup) {
	if cb.Message == nil {
		return
	}
	if err := b.sender.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.MessageID, text, markup); err != nil {
		logger.Error().Err(err).Int64("chat_id", cb.Message.Chat.ID).Msg("Failed to edit message")
	}
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string, showAlert bool) {
	if err := b.sender.AnswerCallbackQuery(ctx, callbackID, text, showAlert); err != nil {
		logger.Error().Err(err).Msg("Failed to answer callback query")
	}
}

// Notifier adapts the sender for the admin service's best-effort
// notifications.
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) NotifyProApproved(ctx context.Context, userID int64) error {
	return n.sender.SendMessage(ctx, userID, proApprovedText, nil)
}
