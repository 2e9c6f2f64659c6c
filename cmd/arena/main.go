package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/rs/zerolog/log"
)

func main() {
	tierA := flag.String("a", "hard", "first tier (easy/medium/hard)")
	tierB := flag.String("b", "medium", "second tier (easy/medium/hard)")
	games := flag.Int("games", 100, "number of games to play")
	workers := flag.Int("workers", runtime.NumCPU(), "games played concurrently")
	swap := flag.Bool("swap", true, "alternate which tier moves first")
	seed := flag.Int64("seed", 0, "seed for reproducible random moves (0 = unseeded)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	config.SetupLogging(*logLevel, true)

	a, err := domain.ParseDifficulty(*tierA)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	b, err := domain.ParseDifficulty(*tierB)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if *games < 1 {
		fmt.Fprintln(os.Stderr, "-games must be at least 1")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	nameA := fmt.Sprintf("%s (%s)", domain.BotName(a), a)
	nameB := fmt.Sprintf("%s (%s)", domain.BotName(b), b)
	fmt.Printf("Playing %d games: %s vs %s, %d workers\n", *games, nameA, nameB, *workers)

	start := time.Now()
	summary, err := playSeries(ctx, seriesConfig{
		TierA:   a,
		TierB:   b,
		Games:   *games,
		Workers: *workers,
		Swap:    *swap,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("arena stopped")
	}

	fmt.Printf("%-20s W %d  D %d  L %d\n", nameA, summary.Wins, summary.Draws, summary.Losses)
	fmt.Printf("Elo: %s %d, %s %d\n", nameA, summary.RatingA, nameB, summary.RatingB)
	fmt.Printf("Average game length %.1f moves, %s elapsed\n", summary.AverageMoves, time.Since(start).Round(time.Millisecond))
}
