package bot

import (
	"math"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

func (p *Policy) mediumMove(board domain.Board, player domain.PlayerID) int {
	if col := tacticalMove(board, player); col != domain.NoColumn {
		return col
	}

	moves := CenterOrdered(board.LegalColumns())
	if len(moves) == 0 {
		return domain.NoColumn
	}

	// one ply of greedy lookahead; ties keep the column nearest the center
	bestCol, bestScore := moves[0], math.MinInt
	for _, col := range moves {
		next, _, err := board.ApplyMove(col, player)
		if err != nil {
			continue
		}
		if score := Evaluate(next, player); score > bestScore {
			bestCol, bestScore = col, score
		}
	}
	return bestCol
}
