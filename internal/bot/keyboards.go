package bot

import (
	"fmt"

	"twa-games-backend/internal/features/prorequest/models"
	"twa-games-backend/internal/platform/telegram"
)

func languageKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: labelUzbek}, {Text: labelEnglish}},
			{{Text: labelRussian}},
		},
		ResizeKeyboard: true,
	}
}

func (b *Bot) mainMenuKeyboard(lang string) *telegram.ReplyKeyboardMarkup {
	webAppButton := telegram.KeyboardButton{Text: text(webAppButtonTexts, lang)}
	if b.webAppURL != "" {
		webAppButton.WebApp = &telegram.WebAppInfo{URL: b.webAppURL}
	}

	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{webAppButton},
			{{Text: text(supportButtonTexts, lang)}},
		},
		ResizeKeyboard: true,
	}
}

func contactKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: "📱 Share Contact", RequestContact: true}},
		},
		ResizeKeyboard: true,
	}
}

func removeKeyboard() *telegram.ReplyKeyboardRemove {
	return &telegram.ReplyKeyboardRemove{RemoveKeyboard: true}
}

func adminKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "👥 Users", CallbackData: "admin_users"}},
			{{Text: "🎮 Games Stats", CallbackData: "admin_games"}},
			{{Text: "⭐ Pro Requests", CallbackData: "admin_requests"}},
		},
	}
}

func pendingRequestsKeyboard(requests []models.PendingRequest) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	for _, req := range requests {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: fmt.Sprintf("✅ Approve %s", req.FullName), CallbackData: fmt.Sprintf("approve_%d", req.ID)},
			{Text: fmt.Sprintf("❌ Reject %s", req.FullName), CallbackData: fmt.Sprintf("reject_%d", req.ID)},
		})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{{Text: "« Back", CallbackData: "admin_back"}})

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
