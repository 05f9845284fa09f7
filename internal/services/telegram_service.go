package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService pushes card lifecycle events to the operators' chat.
// A nil service is a valid no-op so callers never have to guard.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) *TelegramService {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg][skip] token or chat_id empty, notifications disabled")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg][init][err] %v", err)
		return nil
	}
	log.Printf("[tg][init] authorized as %s", bot.Self.UserName)
	return &TelegramService{bot: bot, chatID: chatID}
}

func (t *TelegramService) NotifyCardEvent(userID, cardType, status string) {
	if t == nil || t.bot == nil {
		return
	}
	text := fmt.Sprintf("Carte <b>%s</b> — utilisateur <b>%s</b> : <b>%s</b>", cardType, userID, status)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		// notification is best-effort; the card operation already succeeded
		log.Printf("[tg][send][err] %v", err)
	}
}
