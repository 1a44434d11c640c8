/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/data"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/persistence"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/session"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

var heroCmd = &cobra.Command{
	Use:   "hero",
	Short: "Manage Summoner heroes",
}

var heroCreateCmd = &cobra.Command{
	Use:   "create [hero_id]",
	Short: "Create a new hero and its event log",
	Long: `Bootstraps heroes/<hero_id>/log.jsonl and records the hero creation event.
The circle picks the portfolio: blight (demon), graves (undead), spring (fey)
or storms (elemental).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		name, _ := cmd.Flags().GetString("name")
		level, _ := cmd.Flags().GetInt("level")
		formation, _ := cmd.Flags().GetString("formation")
		circle, _ := cmd.Flags().GetString("circle")
		kit, _ := cmd.Flags().GetInt("kit_stamina")
		signatures, _ := cmd.Flags().GetStringSlice("signature")

		f, err := summoner.ParseFormation(formation)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if name == "" {
			name = id
		}

		if err := createHero(&engine.HeroCreatedEvent{
			ID:         id,
			Name:       name,
			Level:      level,
			Formation:  f,
			Circle:     summoner.Circle(circle),
			KitStamina: kit,
			Signatures: signatures,
		}); err != nil {
			fmt.Printf("Error creating hero: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully created hero %s!\n", name)
		fmt.Printf("Log file stored at: %s/log.jsonl\n", heroManager().HeroPath(id))
	},
}

// createHero opens a fresh log and records the creation event, removing the
// hero folder again when the event is refused.
func createHero(evt *engine.HeroCreatedEvent) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, err := rules.NewRegistry()
	if err != nil {
		return err
	}
	catalog, err := data.NewLoader(dataDirs(evt.ID)).LoadCatalog(reg)
	if err != nil {
		return fmt.Errorf("failed to load portfolios: %w", err)
	}
	if len(evt.Signatures) == 0 {
		if p, ok := catalog.ForCircle(evt.Circle); ok {
			for i := 0; i < len(p.Signatures) && i < 2; i++ {
				evt.Signatures = append(evt.Signatures, p.Signatures[i].ID)
			}
		}
	}

	manager := heroManager()
	store, err := manager.Create(evt.ID)
	if err != nil {
		return err
	}
	app, err := session.NewSession(evt.ID, catalog, store, session.WithLogger(logger), session.WithRules(reg))
	if err == nil {
		err = app.ApplyAndAppend(evt)
		app.Close()
	} else {
		store.Close()
	}
	if err != nil {
		_ = os.RemoveAll(manager.HeroPath(evt.ID))
		return err
	}
	return nil
}

var heroLoadCmd = &cobra.Command{
	Use:   "load [hero_id]",
	Short: "Load a hero and print its current sheet",
	Long: `Reads the log.jsonl of a hero and calculates the GameState via the
event Projector, then prints the status block.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, cleanup, err := openSession(args[0])
		if err != nil {
			fmt.Printf("Error loading hero: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		evt, err := app.Execute("status")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(evt.Message())
	},
}

var heroListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every hero under the heroes directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ids, err := heroManager().List()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(ids) == 0 {
			fmt.Println("No heroes yet. Run 'summoner hero create <id>'.")
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var heroSnapshotCmd = &cobra.Command{
	Use:   "snapshot [hero_id] [label]",
	Short: "Checkpoint a hero's state, or list its checkpoints with --list",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetString("snapshot_db") == "" {
			fmt.Println("Error: snapshot_db is not configured")
			os.Exit(1)
		}
		if list, _ := cmd.Flags().GetBool("list"); list {
			listSnapshots(args[0])
			return
		}

		label := "manual"
		if len(args) == 2 {
			label = args[1]
		}
		app, cleanup, err := openSession(args[0])
		if err != nil {
			fmt.Printf("Error loading hero: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		snap, err := app.Snapshot(context.Background(), label)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot %q saved at event %d\n", snap.Label, snap.EventCount)
	},
}

func listSnapshots(heroID string) {
	snaps, err := persistence.OpenSnapshots(viper.GetString("snapshot_db"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer snaps.Close()

	list, err := snaps.List(context.Background(), heroID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, s := range list {
		fmt.Printf("events=%-6d %-10s %s\n", s.EventCount, s.Label, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func init() {
	rootCmd.AddCommand(heroCmd)
	heroCmd.AddCommand(heroCreateCmd, heroLoadCmd, heroListCmd, heroSnapshotCmd)

	heroCreateCmd.Flags().StringP("name", "n", "", "Hero display name (defaults to the id)")
	heroCreateCmd.Flags().IntP("level", "l", 1, "Starting level (1-10)")
	heroCreateCmd.Flags().StringP("formation", "f", string(summoner.FormationPlatoon), "Formation: horde, platoon, elite or leader")
	heroCreateCmd.Flags().StringP("circle", "c", string(summoner.CircleBlight), "Circle: blight, graves, spring or storms")
	heroCreateCmd.Flags().Int("kit_stamina", 0, "Stamina bonus from the hero's kit")
	heroCreateCmd.Flags().StringSliceP("signature", "s", nil, "Signature minion template id (up to 2, defaults to the first two)")

	heroSnapshotCmd.Flags().Bool("list", false, "List saved snapshots instead of taking one")
}
