package main

import (
	"context"
	"math/rand"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/engine"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
	"golang.org/x/sync/errgroup"
)

type seriesConfig struct {
	TierA   domain.Difficulty
	TierB   domain.Difficulty
	Games   int
	Workers int
	// Swap alternates which tier moves first
	Swap bool
	// Seed makes easy-tier games reproducible; 0 uses the default source
	Seed int64
}

type gameResult struct {
	// Winner is from tier A's side: 1 win, -1 loss, 0 draw
	Winner int
	Moves  int
}

type seriesSummary struct {
	Wins, Draws, Losses int
	RatingA, RatingB    int
	AverageMoves        float64
}

// playSeries plays cfg.Games matches between the two tiers, at most
// cfg.Workers at a time.
func playSeries(ctx context.Context, cfg seriesConfig) (seriesSummary, error) {
	results := make([]gameResult, cfg.Games)
	shared := bot.NewPolicy()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			policy := shared
			if cfg.Seed != 0 {
				policy = bot.NewPolicy(bot.WithRandomSource(rand.New(rand.NewSource(cfg.Seed + int64(i)))))
			}
			runner := match.NewRunner(engine.NewService(policy, nil, 0, 0), nil, 0)

			aFirst := !cfg.Swap || i%2 == 0
			m := match.NewMatch(cfg.TierA, cfg.TierB)
			if !aFirst {
				m = match.NewMatch(cfg.TierB, cfg.TierA)
			}
			if err := runner.Play(ctx, m, nil); err != nil {
				return err
			}

			view := m.View()
			results[i] = gameResult{Winner: sideResult(view, aFirst), Moves: len(view.Moves)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return seriesSummary{}, err
	}

	return summarize(results), nil
}

// sideResult converts a finished match into tier A's result.
func sideResult(view match.View, aFirst bool) int {
	if view.Status != domain.StatusWon {
		return 0
	}
	// the last move of a won game is the winner's
	winner := view.Moves[len(view.Moves)-1].Player
	aSide := domain.Player1
	if !aFirst {
		aSide = domain.Player2
	}
	if winner == aSide {
		return 1
	}
	return -1
}

// summarize replays the results in game order through the Elo update.
func summarize(results []gameResult) seriesSummary {
	s := seriesSummary{RatingA: domain.InitialRating, RatingB: domain.InitialRating}
	totalMoves := 0
	for _, r := range results {
		totalMoves += r.Moves
		winner := domain.Empty
		switch r.Winner {
		case 1:
			s.Wins++
			winner = domain.Player1
		case -1:
			s.Losses++
			winner = domain.Player2
		default:
			s.Draws++
		}
		s.RatingA, s.RatingB = domain.UpdateRatings(s.RatingA, s.RatingB, winner)
	}
	if len(results) > 0 {
		s.AverageMoves = float64(totalMoves) / float64(len(results))
	}
	return s
}
