/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/data"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/logging"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/persistence"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/session"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "summoner",
	Short: "Army tracker for the Draw Steel Summoner",
	Long: `summoner keeps the event-sourced record of a Summoner hero: essence,
minion squads, the fixture, the champion and out-of-combat summons.

Create a hero with 'hero create', then drive it from 'repl' or a Telegram group.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.summoner.yaml)")
	rootCmd.PersistentFlags().String("heroes_dir", "./heroes", "directory holding one folder per hero")
	rootCmd.PersistentFlags().StringSlice("data_dirs", nil, "extra directories searched for portfolio YAML")
	rootCmd.PersistentFlags().String("log_level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("snapshot_db", "", "SQLite file for state snapshots (disabled when empty)")

	_ = viper.BindPFlag("heroes_dir", rootCmd.PersistentFlags().Lookup("heroes_dir"))
	_ = viper.BindPFlag("data_dirs", rootCmd.PersistentFlags().Lookup("data_dirs"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log_level"))
	_ = viper.BindPFlag("snapshot_db", rootCmd.PersistentFlags().Lookup("snapshot_db"))

	viper.SetDefault("log.encoding", "console")
	viper.SetDefault("snapshot_every", 50)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".summoner")
	}

	viper.SetEnvPrefix("summoner")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (*zap.Logger, error) {
	return logging.New(viper.GetString("log.level"), viper.GetString("log.encoding"), viper.GetStringSlice("log.output"))
}

func heroManager() *persistence.HeroManager {
	return persistence.NewHeroManager(viper.GetString("heroes_dir"))
}

// dataDirs puts the hero's own data folder ahead of the configured ones.
func dataDirs(heroID string) []string {
	dirs := []string{}
	if heroID != "" {
		dirs = append(dirs, filepath.Join(heroManager().HeroPath(heroID), "data"))
	}
	return append(dirs, viper.GetStringSlice("data_dirs")...)
}

// openSession wires the event log, the portfolio catalog, the rule registry,
// logging and optional snapshots for one hero. The returned cleanup closes
// everything that was opened.
func openSession(heroID string) (*session.Session, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	reg, err := rules.NewRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}
	catalog, err := data.NewLoader(dataDirs(heroID)).LoadCatalog(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load portfolios: %w", err)
	}
	store, err := heroManager().Load(heroID)
	if err != nil {
		return nil, nil, err
	}

	opts := []session.Option{session.WithLogger(logger), session.WithRules(reg)}
	var snaps *persistence.SnapshotStore
	if path := viper.GetString("snapshot_db"); path != "" {
		snaps, err = persistence.OpenSnapshots(path)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		opts = append(opts, session.WithSnapshots(snaps, viper.GetInt("snapshot_every")))
	}

	app, err := session.NewSession(heroID, catalog, store, opts...)
	if err != nil {
		store.Close()
		snaps.Close()
		return nil, nil, err
	}
	cleanup := func() {
		app.Close()
		snaps.Close()
		_ = logger.Sync()
	}
	return app, cleanup, nil
}
