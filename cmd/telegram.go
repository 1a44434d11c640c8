/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/session"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/telegram"
)

const telegramFile = "telegram.yaml"

var (
	tgChatID string
	tgUsers  []int64
)

// TelegramHeroConfig binds a hero to a group chat.
type TelegramHeroConfig struct {
	ChatID int64   `yaml:"chat_id"`
	Users  []int64 `yaml:"users"` // empty means everyone in the chat
}

func telegramConfigPath(heroID string) string {
	return filepath.Join(heroManager().HeroPath(heroID), telegramFile)
}

func readTelegramConfig(path string) (*TelegramHeroConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var config TelegramHeroConfig
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &config, nil
}

func writeTelegramConfig(path string, config *TelegramHeroConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewEncoder(f).Encode(config)
}

var heroTelegramCmd = &cobra.Command{
	Use:   "telegram [hero_id]",
	Short: "Configure the Telegram group that drives a hero",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		heroID := args[0]
		if !heroManager().Exists(heroID) {
			fmt.Printf("Error: hero %s does not exist. Run 'hero create' first.\n", heroID)
			os.Exit(1)
		}

		path := telegramConfigPath(heroID)
		config, err := readTelegramConfig(path)
		if err != nil {
			config = &TelegramHeroConfig{}
		}

		if tgChatID == "" && config.ChatID == 0 {
			fmt.Println("---")
			fmt.Println("How to get your Telegram Chat ID:")
			fmt.Println("1. Add your bot to the group.")
			fmt.Println("2. Send a message in the group (e.g., /start).")
			fmt.Println("3. Access https://api.telegram.org/bot<TOKEN>/getUpdates in your browser.")
			fmt.Println("4. Look for the 'chat' object and its 'id' field (it usually starts with a minus sign).")
			fmt.Println("---")
			fmt.Print("chat_id: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				tgChatID = strings.TrimSpace(scanner.Text())
			}
		}
		if tgChatID != "" {
			id, err := strconv.ParseInt(tgChatID, 10, 64)
			if err != nil {
				fmt.Printf("Error: invalid chat id %q\n", tgChatID)
				os.Exit(1)
			}
			config.ChatID = id
		}
		config.Users = appendUnique(config.Users, tgUsers...)

		if err := writeTelegramConfig(path, config); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Telegram hero configuration saved to %s\n", path)
	},
}

func appendUnique(ids []int64, more ...int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range more {
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids
}

// maybeStartBot relays the hero's Telegram group into the session when a
// token and a hero telegram.yaml are both present. The bot stops with ctx.
func maybeStartBot(ctx context.Context, app *session.Session, heroID string) {
	token := viper.GetString("telegram.token")
	if token == "" {
		return
	}
	config, err := readTelegramConfig(telegramConfigPath(heroID))
	if err != nil || config.ChatID == 0 {
		return
	}

	logger, err := newLogger()
	if err != nil {
		return
	}
	bot := telegram.NewBot(telegram.NewClient(token), config.ChatID, config.Users, app, logger.Named("telegram"))

	go func() {
		if err := bot.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("telegram bot stopped", zap.Error(err))
		}
	}()
	fmt.Printf("[Telegram Bot] Active for chat %d\n", config.ChatID)
}

func init() {
	heroCmd.AddCommand(heroTelegramCmd)
	heroTelegramCmd.Flags().StringVarP(&tgChatID, "chat_id", "c", "", "Telegram group chat ID")
	heroTelegramCmd.Flags().Int64SliceVarP(&tgUsers, "user", "u", nil, "Telegram user id allowed to command the hero (repeatable)")
}
