package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// Heuristic weights, tuned by hand. An open opponent three outweighs our own
// open three.
const (
	SCORE_CENTER_DISK    = 3
	SCORE_FOUR           = 10000
	SCORE_THREE_OPEN     = 100
	SCORE_TWO_OPEN       = 10
	SCORE_OPP_THREE_OPEN = -120
	SCORE_OPP_TWO_OPEN   = -8
	windowLength         = domain.ToWin
)

// window directions as (dRow, dCol), with the first row each one may start on
var windowDirections = []struct {
	dRow, dCol int
	startRow   int
}{
	{0, 1, 0},  // horizontal
	{1, 0, 0},  // vertical
	{1, 1, 0},  // diagonal \
	{-1, 1, 3}, // diagonal /
}

// Evaluate scores board from player's point of view. It does not check for
// terminal positions; a completed four only shows up as SCORE_FOUR.
func Evaluate(board domain.Board, player domain.PlayerID) int {
	score := centerScore(board, player)

	for _, dir := range windowDirections {
		for row := dir.startRow; row < domain.Rows; row++ {
			endRow := row + dir.dRow*(windowLength-1)
			if endRow < 0 || endRow >= domain.Rows {
				continue
			}
			for col := 0; col+dir.dCol*(windowLength-1) < domain.Columns; col++ {
				var window [windowLength]domain.PlayerID
				for i := 0; i < windowLength; i++ {
					window[i] = board[row+dir.dRow*i][col+dir.dCol*i]
				}
				score += scoreWindow(window, player)
			}
		}
	}

	return score
}

func centerScore(board domain.Board, player domain.PlayerID) int {
	count := 0
	for row := 0; row < domain.Rows; row++ {
		if board[row][domain.CenterColumn] == player {
			count++
		}
	}
	return count * SCORE_CENTER_DISK
}

func scoreWindow(window [windowLength]domain.PlayerID, player domain.PlayerID) int {
	opponent := player.Opponent()
	mine, theirs, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case player:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	score := 0
	switch {
	case mine == 4:
		score += SCORE_FOUR
	case mine == 3 && empty == 1:
		score += SCORE_THREE_OPEN
	case mine == 2 && empty == 2:
		score += SCORE_TWO_OPEN
	}

	switch {
	case theirs == 3 && empty == 1:
		score += SCORE_OPP_THREE_OPEN
	case theirs == 2 && empty == 2:
		score += SCORE_OPP_TWO_OPEN
	}

	return score
}
