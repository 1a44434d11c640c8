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
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/telegram"
)

const botFatherHelp = `---
Talk to @BotFather in Telegram, send /newbot and copy the HTTP API token it returns.
Add the bot to the group that plays the hero and turn its privacy mode off, so it
sees commands like /summon. Then run 'summoner hero telegram <hero_id>'.
---`

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Configure chat relays shared by every hero",
}

var telegramBotCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Store the Telegram bot token used by repl",
	Long: `Saves telegram.token in the config file. With --check the token is tried
against the Bot API first and refused when Telegram rejects it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			fmt.Println(botFatherHelp)
			fmt.Print("token: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				token = strings.TrimSpace(scanner.Text())
			}
		}
		if token == "" {
			fmt.Println("No token given, nothing saved.")
			return
		}

		if check, _ := cmd.Flags().GetBool("check"); check {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := telegram.NewClient(token).GetUpdates(ctx, 0, 0); err != nil {
				fmt.Printf("Error: token rejected: %v\n", err)
				os.Exit(1)
			}
		}

		home, _ := os.UserHomeDir()
		path, err := saveSetting("telegram.token", token, filepath.Join(home, ".summoner.yaml"))
		if err != nil {
			fmt.Printf("Error saving configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Telegram token saved to %s\n", path)
	},
}

// saveSetting writes key into the loaded config file, or into fallback when
// no config file was found.
func saveSetting(key, value, fallback string) (string, error) {
	viper.Set(key, value)
	if used := viper.ConfigFileUsed(); used != "" {
		if err := viper.WriteConfig(); err == nil {
			return used, nil
		}
	}
	if err := viper.WriteConfigAs(fallback); err != nil {
		return "", err
	}
	return fallback, nil
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.AddCommand(telegramBotCmd)

	telegramBotCmd.Flags().StringP("token", "t", "", "Telegram bot API token")
	telegramBotCmd.Flags().Bool("check", false, "Verify the token with Telegram before saving")
}
