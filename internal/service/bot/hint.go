package bot

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type HintKind string

const (
	HintWinning   HintKind = "winning"
	HintBlocking  HintKind = "blocking"
	HintStrategic HintKind = "strategic"
	HintNone      HintKind = "none"
)

// Hint is a suggested column with a message ready for display. Column is
// zero-based; the message counts columns from 1.
type Hint struct {
	Column  int      `json:"column"`
	Kind    HintKind `json:"kind"`
	Message string   `json:"message"`
}

// Hint suggests the move the given tier would play for player and explains it.
func (p *Policy) Hint(board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) (Hint, error) {
	col, err := p.SelectMove(board, player, difficulty)
	if err != nil {
		return Hint{}, err
	}
	return DescribeMove(board, player, col), nil
}

// DescribeMove labels col on the pre-move board.
func DescribeMove(board domain.Board, player domain.PlayerID, col int) Hint {
	if col == domain.NoColumn || !board.IsLegal(col) {
		return Hint{Column: domain.NoColumn, Kind: HintNone, Message: "No valid moves available!"}
	}

	kind := HintStrategic
	if next, _, err := board.ApplyMove(col, player); err == nil && next.HasWon(player) {
		kind = HintWinning
	} else if FindWinningMove(board, player.Opponent()) == col {
		kind = HintBlocking
	}

	message := fmt.Sprintf("Try column %d", col+1)
	switch kind {
	case HintWinning:
		message += " - Winning move!"
	case HintBlocking:
		message += " - Blocks opponent!"
	default:
		message += " - Strategic position"
	}

	return Hint{Column: col, Kind: kind, Message: message}
}
