package middleware

import "github.com/go-telegram/bot/models"

type updateInfo struct {
	kind   string
	chatID int64
	userID int64
	data   string
}

func describe(update *models.Update) updateInfo {
	info := updateInfo{kind: "unknown"}
	if update == nil {
		return info
	}
	if update.Message != nil {
		info.kind = "message"
		info.chatID = update.Message.Chat.ID
		if update.Message.From != nil {
			info.userID = update.Message.From.ID
		}
	} else if update.CallbackQuery != nil {
		info.kind = "callback_query"
		if update.CallbackQuery.Message.Message != nil {
			info.chatID = update.CallbackQuery.Message.Message.Chat.ID
		}
		info.userID = update.CallbackQuery.From.ID
		info.data = update.CallbackQuery.Data
	}
	return info
}
