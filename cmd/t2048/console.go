package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/console"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	consoleFlags      gameFlags
	flagConsoleResume string
	flagNoSpawn       bool
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play with the text front end",
	Long: `Play one line at a time: the board is printed after every command.

Commands:
  l, r, u, d  - Shift left, right, up or down (full words work too)
  undo        - Revert the last move
  exit        - Leave the game

A resumed game is written back to its slot when the console exits.
--no-spawn stops new tiles from appearing, which makes scripted play
deterministic; it needs --resume for a non-empty starting board.

Examples:
  t2048 console
  t2048 console --preset mini --seed 7
  t2048 console --resume latest --no-spawn < moves.txt`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	consoleFlags.register(consoleCmd)
	consoleCmd.Flags().StringVar(&flagConsoleResume, "resume", "", "Resume a saved game: slot ID, ID prefix or 'latest'")
	consoleCmd.Flags().BoolVar(&flagNoSpawn, "no-spawn", false, "Do not spawn tiles after moves")
}

func runConsole(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := consoleFlags.apply(cmd, &cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	settings := game.SettingsFrom(cfg.Game)
	settings.NoSpawn = flagNoSpawn
	rc := core.RuntimeConfig{Seed: flagSeed}

	var (
		session *game.Session
		store   *storage.Store
		slot    storage.Slot
	)
	if cmd.Flags().Changed("resume") {
		store, err = requireStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		slot, err = store.Resolve(flagConsoleResume)
		if err != nil {
			return err
		}
		session, err = game.Resume(slot.State, settings, rc)
	} else {
		if flagNoSpawn {
			return errors.New("--no-spawn needs --resume: a new board would stay empty")
		}
		session, err = game.New(settings, rc)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := console.New(os.Stdin, os.Stdout, session, logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debug("console finished", "status", res.Status, "score", res.Score, "moves", res.Moves)

	if store != nil {
		if _, err := store.Update(slot.ID, session.State()); err != nil {
			return fmt.Errorf("cannot update slot %s: %w", slot.ID, err)
		}
		logger.Info("game saved", "slot", slot.ID, "status", res.Status)
	}

	if res.Status == engine.StatusPlaying && res.Moves > 0 && store == nil {
		fmt.Printf("Final score: %s after %d moves.\n", game.FormatScore(res.Score), res.Moves)
	}
	return nil
}
