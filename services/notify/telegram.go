package notifysvc

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
)

// telegramSender is the part of *tgbotapi.BotAPI used to post messages.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifier struct {
	bot    telegramSender
	chatID int64
	users  UserFinder
	logger core.Logger
}

// NewTelegramNotifier posts milestones to the family chat configured in conf.Telegram.
func NewTelegramNotifier(conf *core.Config, users UserFinder, logger core.Logger) (core.Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(conf.Telegram.Token)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to telegram")
	}
	return newTelegramNotifier(bot, conf.Telegram.ChatID, users, logger), nil
}

func newTelegramNotifier(bot telegramSender, chatID int64, users UserFinder, logger core.Logger) *telegramNotifier {
	return &telegramNotifier{bot: bot, chatID: chatID, users: users, logger: logger}
}

func (tn *telegramNotifier) Notify(n core.Notification) {
	if n.Kind != core.KindMilestone {
		return
	}
	name := "Someone"
	if usr, err := tn.users.GetByID(n.UserID); err == nil {
		name = usr.Name
	}
	text := fmt.Sprintf("🌱 %s: %s\n%s", name, n.Title, n.Message)
	if _, err := tn.bot.Send(tgbotapi.NewMessage(tn.chatID, text)); err != nil {
		tn.logger.Error("sending telegram message", err)
	}
}
