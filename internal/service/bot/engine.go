package bot

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"lukechampine.com/frand"
)

// RandomSource picks an index in [0, n). *math/rand.Rand satisfies it, which
// is what tests inject for reproducible easy-tier games.
type RandomSource interface {
	Intn(n int) int
}

type frandSource struct{}

func (frandSource) Intn(n int) int {
	return frand.Intn(n)
}

// DepthSchedule maps the number of filled cells to a search depth.
type DepthSchedule func(filled int) int

// Policy selects moves for every difficulty tier. It holds no board state,
// so a single Policy can serve concurrent callers as long as its
// RandomSource is safe for concurrent use (the default one is).
type Policy struct {
	rng   RandomSource
	depth DepthSchedule
}

type Option func(*Policy)

func WithRandomSource(rng RandomSource) Option {
	return func(p *Policy) {
		p.rng = rng
	}
}

func WithDepthSchedule(schedule DepthSchedule) Option {
	return func(p *Policy) {
		p.depth = schedule
	}
}

func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		rng:   frandSource{},
		depth: DefaultDepthSchedule,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SelectMove picks a column for player. It returns domain.NoColumn with a
// nil error when the board has no legal column.
func (p *Policy) SelectMove(board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) (int, error) {
	if !player.Valid() {
		return domain.NoColumn, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, int(player))
	}

	switch difficulty {
	case domain.Easy:
		return p.easyMove(board), nil
	case domain.Medium:
		return p.mediumMove(board, player), nil
	case domain.Hard:
		return p.hardMove(board, player), nil
	default:
		return domain.NoColumn, fmt.Errorf("%w: %d", domain.ErrUnknownDifficulty, int(difficulty))
	}
}

// FindWinningMove returns the lowest column that completes four for player,
// or domain.NoColumn.
func FindWinningMove(board domain.Board, player domain.PlayerID) int {
	for _, col := range board.LegalColumns() {
		next, _, err := board.ApplyMove(col, player)
		if err != nil {
			continue
		}
		if next.HasWon(player) {
			return col
		}
	}
	return domain.NoColumn
}

// tacticalMove covers the shortcuts shared by medium and hard: win now,
// otherwise block the opponent's immediate win.
func tacticalMove(board domain.Board, player domain.PlayerID) int {
	if col := FindWinningMove(board, player); col != domain.NoColumn {
		return col
	}
	return FindWinningMove(board, player.Opponent())
}

func (p *Policy) randomLegal(board domain.Board) int {
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return domain.NoColumn
	}
	return legal[p.rng.Intn(len(legal))]
}
