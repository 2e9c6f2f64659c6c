package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// easyMove plays a uniformly random legal column, nothing more.
func (p *Policy) easyMove(board domain.Board) int {
	return p.randomLegal(board)
}
