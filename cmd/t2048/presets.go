package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List board presets",
	Long:  `Shows the built-in board presets usable with --preset or game.preset in the config.`,
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := len("Name")
	for _, p := range config.Presets {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxNameLen, "Name", "Board", "Target", "P(4)", "Title")
	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxNameLen, "----", "-----", "------", "----", "-----")

	for _, p := range config.Presets {
		marker := ""
		if p.Name == cfg.Game.Preset {
			marker = " (configured)"
		}
		fmt.Printf("  %-*s  %-5s  %-6d  %-6.2f  %s%s\n",
			maxNameLen, p.Name, fmt.Sprintf("%dx%d", p.Size, p.Size), p.WinTarget, p.FourProbability, p.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --preset <name>' to play one.")
	return nil
}
