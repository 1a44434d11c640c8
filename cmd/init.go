/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/data"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Copy the bundled portfolio files into a data directory",
	Long: `Writes the built-in portfolio YAML files to disk so they can be edited.
Files in a data directory take precedence over the bundled copies, either for
every hero (data_dirs) or for one hero (heroes/<hero_id>/data).`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data_dir_local")
		if dataDir == "" {
			rootDir, _ := os.Getwd()
			dataDir = filepath.Join(rootDir, "data")
		}
		force, _ := cmd.Flags().GetBool("force")

		written, err := exportBundled(dataDir, force)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n%d portfolio files written to %s\n", written, dataDir)
	},
}

// exportBundled writes every embedded file under dir, keeping existing files
// unless force is set.
func exportBundled(dir string, force bool) (int, error) {
	files, names, err := data.Bundled()
	if err != nil {
		return 0, err
	}

	bar := progressbar.Default(int64(len(names)), "Writing portfolios")
	written := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				_ = bar.Add(1)
				continue
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written++
		_ = bar.Add(1)
	}
	return written, nil
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite files that already exist")
	initCmd.Flags().String("data_dir_local", "", "Directory to write to (defaults to ./data)")
}
