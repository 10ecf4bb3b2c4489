package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	config "github.com/resssoft/casefolio/configuration"
	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
)

// Client pushes a short Telegram message to the admin chat whenever the post
// collection changes. Without a configured token it still registers and
// swallows every event, so the rest of the app never checks whether
// notifications are on.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatId int64
}

func Provide(dispatcher *mediator.Dispatcher) *Client {
	var bot *tgbotapi.BotAPI
	token := config.NotifierToken()
	if token != "" {
		var err error
		bot, err = tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Error().AnErr("notifier bot error", err).Send()
			bot = nil
		} else {
			log.Info().Str("bot", bot.Self.UserName).Msg("notifier connected")
		}
	}
	client := &Client{
		bot:    bot,
		chatId: config.NotifierChatId(),
	}
	if err := dispatcher.Register(
		Listener{Client: client},
		models.PostEvents...); err != nil {
		log.Info().Err(err).Send()
	}
	return client
}

func (c *Client) PostCreated(event models.PostCreatedEvent) {
	c.send(fmt.Sprintf("New case study: %s (%s)", event.Post.Title, event.Post.Slug))
}

func (c *Client) PostDeleted(event models.PostDeletedEvent) {
	c.send(fmt.Sprintf("Case study deleted: %s", event.Title))
}

func (c *Client) OrderUpdated(event models.OrderUpdatedEvent) {
	c.send(fmt.Sprintf("Display order updated, %d case studies", len(event.Sequence)))
}

func (c *Client) send(text string) {
	if c.bot == nil || c.chatId == 0 {
		return
	}
	message := tgbotapi.NewMessage(c.chatId, text)
	if _, err := c.bot.Send(message); err != nil {
		log.Error().AnErr("notifier send error", err).Send()
	}
}
