package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round",
	Long: `Start playing right away, without the menu.

Controls:
  Left/Right, A/D   - Move
  Up/W/X            - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down/S/Space      - Drop one row
  Mouse click       - Top third rotates, middle moves, bottom drops
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot to ~/.tetris/screenshots
  Q/Ctrl+C          - Quit

Finished rounds are stored in the replay database.

Difficulty options:
  easy   - Slower start, gentle speedup
  normal - Classic timing
  hard   - Fast start, steep speedup
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42
  tetris play --config ./wide-board.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	rules, preset, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules, err = config.Resolve(rules, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tetris.UseConfig(rules)

	game, err := registry.Create(tetris.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	gameLog, closeLog := fileLogger()
	runErr := tui.Run(game, store, runtimeConfig(), gameLog)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(),
		Seed:     flagSeed,
	}
}

// tickRate returns the --fps flag limited to a rate the tick loop can keep.
func tickRate() int {
	return core.Clamp(flagFPS, 1, 240)
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openStore opens the replay database. Without it the game still works,
// rounds are just not recorded.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// localUser names the player stored with local rounds.
func localUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// fileLogger returns a logger for code running under the alternate screen,
// where writing to stderr would corrupt the display. It appends to
// ~/.tetris/tetris.log, or discards when the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	discard := func() (*log.Logger, func()) {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard()
	}
	path := filepath.Join(home, ".tetris", "tetris.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("could not open log file", "path", path, "error", err)
		return discard()
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}
