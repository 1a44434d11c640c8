/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replCmd = &cobra.Command{
	Use:   "repl [hero_id]",
	Short: "Start the interactive REPL shell",
	Long: `Starts the read-eval-print loop for a hero. When a Telegram token and a
hero telegram.yaml are configured, the same session also answers the group chat.
Usage:
	> combat start
	> summon demon_archer_spittlich into squad-1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		heroID := args[0]
		// stderr would draw over the alt screen
		if len(viper.GetStringSlice("log.output")) == 0 {
			viper.Set("log.output", []string{filepath.Join(heroManager().HeroPath(heroID), "session.log")})
		}
		app, cleanup, err := openSession(heroID)
		if err != nil {
			fmt.Printf("Failed to bootstrap hero session: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		maybeStartBot(ctx, app, heroID)

		if err := RunTUI(app, heroID); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
