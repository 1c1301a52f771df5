// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                   - Start the menu
//	tetris play              - Start a round right away
//	tetris serve             - Start SSH server for remote play
//	tetris replays           - List recorded rounds
//	tetris replay <id|file>  - Verify or watch a recorded round
//	tetris config            - Print the effective rules as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/replays.db)
//	--config <path>       - Load rules from a YAML file
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tetris",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `A falling-block puzzle game for the terminal.

Available commands:
  play     - Start a round right away
  menu     - Interactive menu (default)
  serve    - Start SSH server for remote play
  replays  - List recorded rounds
  replay   - Verify or watch a recorded round
  config   - Print the effective rules

Examples:
  tetris
  tetris play --difficulty hard
  tetris serve --ssh :2222
  tetris replay 12 --watch`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadRules reads the rule file and the difficulty flag.
// The returned config has no preset applied yet.
func loadRules() (config.TetrisConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	logger.Debug("rules loaded", "path", flagConfig, "difficulty", preset,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height))
	return cfg, preset, nil
}

// newGame builds a game for the given rules. It doubles as the replay factory.
func newGame(cfg config.TetrisConfig) registry.Game {
	return tetris.NewWithConfig(cfg)
}
