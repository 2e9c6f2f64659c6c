package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	OPENING_DEPTH      = 4
	MIDGAME_DEPTH      = 3
	OPENING_FILL_LIMIT = 8
)

// DefaultDepthSchedule searches deeper while the board is nearly empty.
func DefaultDepthSchedule(filled int) int {
	if filled <= OPENING_FILL_LIMIT {
		return OPENING_DEPTH
	}
	return MIDGAME_DEPTH
}

// DepthFor is the depth the hard tier searches board at.
func (p *Policy) DepthFor(board domain.Board) int {
	return p.depth(board.FilledCells())
}

func (p *Policy) hardMove(board domain.Board, player domain.PlayerID) int {
	// shortcuts run before any search, so a depth of 0 still wins and blocks
	if col := tacticalMove(board, player); col != domain.NoColumn {
		return col
	}

	result := Search(board, p.DepthFor(board), player)
	if !result.HasMove() {
		return p.randomLegal(board)
	}
	return result.Column
}
