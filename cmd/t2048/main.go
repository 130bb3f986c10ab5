// t2048 is the sliding-tile merge puzzle for the terminal.
//
// Usage:
//
//	t2048                    - Start menu (new game, presets, saved games)
//	t2048 play               - Play a board directly
//	t2048 console            - Play with the line-oriented text front end
//	t2048 serve              - Start SSH server for remote play
//	t2048 presets            - List board presets
//	t2048 saves              - List, browse or delete saved games
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.t2048/config.yaml, then ./configs/t2048.yaml)
//	--seed <value>      - Set RNG seed for reproducible tile spawns
//	--db <path>         - Set save database path (default: ~/.t2048/saves.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `Slide the tiles on the board; equal neighbours merge into their sum.
Reach the target tile to win, run out of moves to lose.

Without a subcommand t2048 opens the start menu.

Examples:
  t2048
  t2048 play --preset mini
  t2048 play --resume latest
  t2048 console --size 3 --win 64
  t2048 serve --ssh :2222`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(savesCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
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

	return tui.RunApp(tui.AppOptions{
		Settings: game.SettingsFrom(cfg.Game),
		Store:    store,
		Runtime:  runtimeConfig(),
		Logger:   logger,
	})
}
