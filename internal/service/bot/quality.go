package bot

import (
	"math"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	SCORE_WIN_NOW   = 1000000 // move wins immediately
	SCORE_BLOCK_WIN = 500000  // move takes the opponent's winning column

	// gaps between the best move and the played one
	EXCELLENT_MARGIN = 10
	GOOD_MARGIN      = 50
	OKAY_MARGIN      = 150
)

// MoveQuality rates a played move against the best alternative.
type MoveQuality struct {
	Rating domain.Rating `json:"rating"`
	Score  int           `json:"score"`
}

// RateMove scores played against every legal alternative on board, the
// position before the move was applied. Unknown or illegal columns rate
// neutral.
func RateMove(board domain.Board, player domain.PlayerID, played int) MoveQuality {
	scores := ScoreMoves(board, player)
	if len(scores) == 0 {
		return MoveQuality{Rating: domain.RatingNeutral, Score: 0}
	}

	playedScore, ok := scores[played]
	if !ok {
		return MoveQuality{Rating: domain.RatingNeutral, Score: 0}
	}

	best := math.MinInt
	for _, s := range scores {
		best = max(best, s)
	}

	return MoveQuality{Rating: rate(best, playedScore), Score: playedScore}
}

// ScoreMoves gives every legal column the one-ply score RateMove compares.
func ScoreMoves(board domain.Board, player domain.PlayerID) map[int]int {
	legal := board.LegalColumns()
	scores := make(map[int]int, len(legal))
	if len(legal) == 0 {
		return scores
	}

	block := FindWinningMove(board, player.Opponent())
	for _, col := range legal {
		next, _, err := board.ApplyMove(col, player)
		if err != nil {
			continue
		}
		switch {
		case next.HasWon(player):
			scores[col] = SCORE_WIN_NOW
		case col == block:
			scores[col] = SCORE_BLOCK_WIN
		default:
			scores[col] = Evaluate(next, player)
		}
	}
	return scores
}

func rate(best, played int) domain.Rating {
	if played >= SCORE_BLOCK_WIN {
		return domain.RatingExcellent
	}
	switch gap := best - played; {
	case gap <= EXCELLENT_MARGIN:
		return domain.RatingExcellent
	case gap <= GOOD_MARGIN:
		return domain.RatingGood
	case gap <= OKAY_MARGIN:
		return domain.RatingOkay
	default:
		return domain.RatingPoor
	}
}
