// Package telegram runs dexscout as a long-polling Telegram bot.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dexscout/internal/agent"
)

// updateTimeout is the long-poll window in seconds.
const updateTimeout = 60

type Bot struct {
	api    *tgbotapi.BotAPI
	agent  *agent.Agent
	logger *logrus.Logger
}

func NewBot(token string, ag *agent.Agent, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return &Bot{api: api, agent: ag, logger: logger}, nil
}

// Run consumes updates until ctx is cancelled. Each message is handled in
// its own goroutine so one slow upstream call does not stall the loop.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Infof("telegram: logged in as @%s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	text := message.Text
	if text == "/start" || text == "/help" {
		b.send(message.Chat.ID, b.agent.HelpText())
		return
	}

	reply, matched := b.agent.Dispatch(ctx, agent.Message{ID: uuid.NewString(), Text: text})
	if !matched {
		b.send(message.Chat.ID, b.agent.HelpText())
		return
	}
	b.send(message.Chat.ID, reply.Text)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Errorf("telegram: send failed: %v", err)
	}
}
