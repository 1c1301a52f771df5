package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagWatch  bool
	flagExport string
)

var replayCmd = &cobra.Command{
	Use:   "replay <id|file>",
	Short: "Verify or watch a recorded round",
	Long: `Re-simulate a recorded round and check that it ends with the recorded
score, lines, pieces and tick count.

The argument is either a round ID from the replay database or the path of
a journal YAML file written with --export.

Examples:
  tetris replay 12
  tetris replay 12 --watch
  tetris replay 12 --export round12.yaml
  tetris replay ./round12.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the round back in the terminal")
	replayCmd.Flags().StringVar(&flagExport, "export", "", "Write the journal YAML to this file")
}

func runReplay(_ *cobra.Command, args []string) {
	j, err := loadJournal(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExport != "" {
		data, encErr := replay.Encode(j)
		if encErr == nil {
			encErr = os.WriteFile(flagExport, data, 0o644)
		}
		if encErr != nil {
			fmt.Fprintf(os.Stderr, "Error exporting journal: %v\n", encErr)
			os.Exit(1)
		}
		fmt.Printf("Journal written to %s\n", flagExport)
	}

	if flagWatch {
		width, height := terminalSize()
		if err := tui.Watch(newGame(j.Config), j, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	got, err := replay.Verify(newGame, j)
	if errors.Is(err, replay.ErrMismatch) {
		fmt.Printf("MISMATCH  %v\n", err)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK  seed %d  score %d  lines %d  pieces %d  ticks %d  inputs %d\n",
		j.Seed, got.Score, got.Lines, got.Pieces, got.Ticks, len(j.Inputs))
}

// loadJournal reads a journal by database ID, or from a file when the
// argument is not a number.
func loadJournal(arg string) (replay.Journal, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		data, readErr := os.ReadFile(arg)
		if readErr != nil {
			return replay.Journal{}, readErr
		}
		return replay.Decode(data)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return replay.Journal{}, err
	}
	defer store.Close()

	round, err := store.Round(id)
	if err != nil {
		return replay.Journal{}, err
	}
	logger.Debug("round loaded", "id", round.ID, "player", round.Player, "created", round.CreatedAt)
	return round.Journal, nil
}
