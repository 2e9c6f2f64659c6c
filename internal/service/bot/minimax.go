package bot

import (
	"math"
	"sort"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	MINIMAX_WIN  = 1000000
	MINIMAX_LOSS = -1000000
	MINIMAX_DRAW = 0

	// MaxSearchDepth bounds what callers outside the policy may ask for.
	MaxSearchDepth = 8
)

// SearchResult is the outcome of Search. Column is domain.NoColumn when the
// position was terminal or the depth was exhausted at the root.
type SearchResult struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

func (r SearchResult) HasMove() bool {
	return r.Column != domain.NoColumn
}

// Search runs minimax with alpha-beta pruning for player to move, depth
// plies deep. Scores are from player's point of view.
func Search(board domain.Board, depth int, player domain.PlayerID) SearchResult {
	return minimax(board, depth, math.MinInt, math.MaxInt, true, player)
}

// minimax implements the minimax algorithm with alpha-beta pruning
func minimax(board domain.Board, depth int, alpha, beta int, isMaximizing bool, player domain.PlayerID) SearchResult {
	if winner := board.Winner(); winner != domain.Empty {
		// remaining depth biases toward quicker wins and slower losses
		if winner == player {
			return SearchResult{Column: domain.NoColumn, Score: MINIMAX_WIN + depth}
		}
		return SearchResult{Column: domain.NoColumn, Score: MINIMAX_LOSS - depth}
	}

	moves := CenterOrdered(board.LegalColumns())
	if len(moves) == 0 {
		return SearchResult{Column: domain.NoColumn, Score: MINIMAX_DRAW}
	}

	if depth <= 0 {
		return SearchResult{Column: domain.NoColumn, Score: Evaluate(board, player)}
	}

	if isMaximizing {
		best := SearchResult{Column: moves[0], Score: math.MinInt}
		for _, col := range moves {
			child, _, err := board.ApplyMove(col, player)
			if err != nil {
				continue
			}
			score := minimax(child, depth-1, alpha, beta, false, player).Score
			if score > best.Score {
				best = SearchResult{Column: col, Score: score}
			}
			alpha = max(alpha, best.Score)
			if alpha >= beta {
				break // Beta cutoff
			}
		}
		return best
	}

	opponent := player.Opponent()
	best := SearchResult{Column: moves[0], Score: math.MaxInt}
	for _, col := range moves {
		child, _, err := board.ApplyMove(col, opponent)
		if err != nil {
			continue
		}
		score := minimax(child, depth-1, alpha, beta, true, player).Score
		if score < best.Score {
			best = SearchResult{Column: col, Score: score}
		}
		beta = min(beta, best.Score)
		if alpha >= beta {
			break // Alpha cutoff
		}
	}
	return best
}

// CenterOrdered returns columns sorted by distance from the center column.
// Equal distances keep their input order, so ascending input yields
// 3, 2, 4, 1, 5, 0, 6.
func CenterOrdered(columns []int) []int {
	ordered := make([]int, len(columns))
	copy(ordered, columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return distanceFromCenter(ordered[i]) < distanceFromCenter(ordered[j])
	})
	return ordered
}

func distanceFromCenter(col int) int {
	d := col - domain.CenterColumn
	if d < 0 {
		return -d
	}
	return d
}
