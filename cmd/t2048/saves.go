package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagDelete string
	flagBrowse bool
	flagLimit  int
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List, browse or delete saved games",
	Long: `Display saved games, most recent first.

Examples:
  t2048 saves
  t2048 saves --delete 3f2a9c1e
  t2048 saves --browse`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the slot with this ID or ID prefix")
	savesCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive browser and resume a slot")
	savesCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of slots to list")
}

func runSaves(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete != "" {
		slot, err := store.Resolve(flagDelete)
		if err != nil {
			return err
		}
		if err := store.Delete(slot.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s (%s)\n", slot.ID, slot.Label)
		return nil
	}

	if flagBrowse {
		return browseSaves(cfg, store)
	}

	slots, err := store.List(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Saved games")
	fmt.Println()

	if len(slots) == 0 {
		fmt.Println("No saved games yet.")
		fmt.Println()
		fmt.Println("Press ctrl+s while playing 't2048 play' to save one.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-10s  %-10s  %-6s  %-6s  %-8s  %s\n",
		"ID", "Label", "Board", "Score", "Max", "Moves", "Status", "Saved")
	fmt.Printf("  %-8s  %-16s  %-10s  %-10s  %-6s  %-6s  %-8s  %s\n",
		"--", "-----", "-----", "-----", "---", "-----", "------", "-----")

	for _, s := range slots {
		label := s.Label
		if len(label) > 16 {
			label = label[:15] + "."
		}
		fmt.Printf("  %-8s  %-16s  %-10s  %-10s  %-6d  %-6d  %-8s  %s\n",
			s.ID[:8], label,
			fmt.Sprintf("%dx%d/%d", s.State.Size, s.State.Size, s.State.WinTarget),
			game.FormatScore(s.Score), s.MaxTile, s.Moves, s.Status,
			s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --resume <id>' to continue a game.")
	return nil
}

// browseSaves opens the slot browser and plays the chosen slot.
func browseSaves(cfg config.Config, store *storage.Store) error {
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	rc := runtimeConfig()
	slot, err := tui.RunSaves(store, rc.ScreenW, rc.ScreenH)
	if err != nil || slot == nil {
		return err
	}

	session, err := game.Resume(slot.State, game.SettingsFrom(cfg.Game), rc)
	if err != nil {
		return err
	}
	logger.Info("game resumed", "slot", slot.ID)

	return tui.Run(session, rc, tui.GameOptions{
		Store:  store,
		SlotID: slot.ID,
		Logger: logger,
	})
}
