package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
)

// LastUpdateKey is the config key remembering the last handled update.
const LastUpdateKey = "telegram.last_update_id"

// Executor runs one command line against a hero session.
type Executor interface {
	Execute(input string) (engine.Event, error)
}

// Bot relays chat commands of one Telegram group to a hero session
type Bot struct {
	client       *Client
	executor     Executor
	chatID       int64
	allowed      map[int64]bool // empty allows every member of the chat
	logger       *zap.Logger
	lastUpdateID int
}

// NewBot initializes a new relay bot
func NewBot(client *Client, chatID int64, allowed []int64, exec Executor, logger *zap.Logger) *Bot {
	users := make(map[int64]bool, len(allowed))
	for _, id := range allowed {
		users[id] = true
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		client:       client,
		executor:     exec,
		chatID:       chatID,
		allowed:      users,
		logger:       logger,
		lastUpdateID: viper.GetInt(LastUpdateKey),
	}
}

// Start runs the long-polling loop until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("telegram bot started", zap.Int64("chat", b.chatID))
	for {
		updates, err := b.client.GetUpdates(ctx, b.lastUpdateID+1, 25)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			b.logger.Warn("fetching updates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID > b.lastUpdateID {
				b.lastUpdateID = update.UpdateID
				viper.Set(LastUpdateKey, b.lastUpdateID)
				_ = viper.WriteConfig() // Ignore error if config file doesn't exist yet
			}

			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	if msg.Chat.ID != b.chatID {
		return
	}
	if !strings.HasPrefix(msg.Text, "/") {
		return
	}

	// "/summon@MyBot demon_razor" -> "summon demon_razor"
	parts := strings.Fields(strings.TrimPrefix(msg.Text, "/"))
	if len(parts) == 0 {
		return
	}
	parts[0], _, _ = strings.Cut(parts[0], "@")
	input := strings.Join(parts, " ")

	if len(b.allowed) > 0 && !b.allowed[msg.From.ID] {
		b.reply(ctx, fmt.Sprintf("User %s (%d) does not control this hero.", msg.From.FirstName, msg.From.ID))
		return
	}

	evt, err := b.executor.Execute(input)
	if err != nil {
		b.reply(ctx, fmt.Sprintf("Error: %v", err))
		return
	}
	if evt == nil {
		return
	}
	if out := evt.Message(); out != "" {
		b.reply(ctx, "```\n"+out+"\n```")
	}
}

func (b *Bot) reply(ctx context.Context, text string) {
	if err := b.client.SendMessage(ctx, b.chatID, text); err != nil {
		b.logger.Warn("sending reply failed", zap.Error(err))
	}
}
