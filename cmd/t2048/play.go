package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	playFlags  gameFlags
	flagResume string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a board",
	Long: `Start a game directly, skipping the menu.

Controls:
  Arrows/WASD/hjkl - Shift tiles
  U                - Undo the last move
  R                - Restart
  Ctrl+S           - Save
  ?                - Help
  Q/Ctrl+C         - Quit (unfinished games are saved)

Examples:
  t2048 play
  t2048 play --preset large
  t2048 play --size 5 --win 1024 --four-prob 0.1
  t2048 play --resume latest
  t2048 play --resume 3f2a9c1e`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playFlags.register(playCmd)
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume a saved game: slot ID, ID prefix or 'latest'")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := playFlags.apply(cmd, &cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	rc := runtimeConfig()
	settings := game.SettingsFrom(cfg.Game)

	var (
		session *game.Session
		slotID  string
	)
	if cmd.Flags().Changed("resume") {
		if store == nil {
			return fmt.Errorf("cannot resume: saving is disabled")
		}
		slot, err := store.Resolve(flagResume)
		if err != nil {
			return err
		}
		session, err = game.Resume(slot.State, settings, rc)
		if err != nil {
			return err
		}
		slotID = slot.ID
		logger.Info("game resumed", "slot", slot.ID)
	} else {
		session, err = game.New(settings, rc)
		if err != nil {
			return err
		}
		logger.Info("game started", "size", settings.Size, "win", settings.WinTarget)
	}

	return tui.Run(session, rc, tui.GameOptions{
		Store:  store,
		SlotID: slotID,
		Logger: logger,
	})
}
