package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded rounds",
	Long: `List the most recently finished rounds, newest first.

Examples:
  tetris replays
  tetris replays --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to show")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rounds, err := store.ListRounds(tetris.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Finish a round with 'tetris play' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-7s  %-5s  %-6s  %-6s  %-10s  %s\n", "ID", "Score", "Lines", "Pieces", "Time", "Player", "Date")
	fmt.Printf("  %-5s  %-7s  %-5s  %-6s  %-6s  %-10s  %s\n", "--", "-----", "-----", "------", "----", "------", "----")

	for _, r := range rounds {
		d := r.Duration()
		fmt.Printf("  %-5d  %-7d  %-5d  %-6d  %2d:%02d   %-10s  %s\n",
			r.ID, r.Score, r.Lines, r.Pieces,
			int(d.Minutes()), int(d.Seconds())%60,
			r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'tetris replay <id> --watch' to watch a round.")
}
