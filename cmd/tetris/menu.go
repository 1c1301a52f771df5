package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Esc leaves a paused or finished round and returns to the menu.

Menu entries:
  Play         - Start a round
  Difficulty   - Choose a gravity preset for the next rounds
  Replays      - Browse, watch and delete recorded rounds
  Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./replays.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	rules, preset, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	play := tui.PlaySettings{
		GameID:     tetris.ID,
		TickRate:   tickRate(),
		Rules:      rules,
		Difficulty: preset,
		NewGame:    newGame,
	}

	gameLog, closeLog := fileLogger()
	runErr := tui.RunSession(store, gameLog, play, runtimeConfig(), localUser())

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
