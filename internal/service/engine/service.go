package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/rs/zerolog/log"
)

const moveKeyPrefix = "c4:move:"

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Evaluation is a static read of a position from one player's side.
type Evaluation struct {
	Score        int             `json:"score"`
	Terminal     bool            `json:"terminal"`
	Winner       domain.PlayerID `json:"winner"`
	WinningLine  *domain.Line    `json:"winningLine,omitempty"`
	LegalColumns []int           `json:"legalColumns"`
}

// Service is the entry point the transports use. It validates caller input
// and memoizes the deterministic tiers.
type Service struct {
	Policy   *bot.Policy
	cache    CacheRepository // Optional, can be nil
	cacheTTL time.Duration
	maxDepth int
}

func NewService(policy *bot.Policy, cache CacheRepository, cacheTTL time.Duration, maxDepth int) *Service {
	if policy == nil {
		policy = bot.NewPolicy()
	}
	if maxDepth <= 0 || maxDepth > bot.MaxSearchDepth {
		maxDepth = bot.MaxSearchDepth
	}
	return &Service{
		Policy:   policy,
		cache:    cache,
		cacheTTL: cacheTTL,
		maxDepth: maxDepth,
	}
}

func (s *Service) MaxDepth() int {
	return s.maxDepth
}

// SelectMove returns the column the tier plays, or domain.NoColumn when the
// board is full.
func (s *Service) SelectMove(ctx context.Context, board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) (int, error) {
	if err := checkPosition(board, player); err != nil {
		return domain.NoColumn, err
	}

	cacheable := s.cache != nil && (difficulty == domain.Medium || difficulty == domain.Hard)
	key := moveKey(board, player, difficulty)
	if cacheable {
		if col, ok := s.cachedMove(ctx, key, board); ok {
			return col, nil
		}
	}

	col, err := s.Policy.SelectMove(board, player, difficulty)
	if err != nil {
		return domain.NoColumn, err
	}

	if cacheable && col != domain.NoColumn {
		if err := s.cache.Set(ctx, key, strconv.Itoa(col), s.cacheTTL); err != nil {
			log.Warn().Str("component", "engine").Err(err).Msg("failed to cache move")
		}
	}

	log.Debug().Str("component", "engine").Stringer("difficulty", difficulty).
		Int("player", int(player)).Int("column", col).Msg("move selected")
	return col, nil
}

func (s *Service) Hint(ctx context.Context, board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) (bot.Hint, error) {
	col, err := s.SelectMove(ctx, board, player, difficulty)
	if err != nil {
		return bot.Hint{}, err
	}
	return bot.DescribeMove(board, player, col), nil
}

func (s *Service) RateMove(board domain.Board, player domain.PlayerID, column int) (bot.MoveQuality, error) {
	if err := checkPosition(board, player); err != nil {
		return bot.MoveQuality{}, err
	}
	return bot.RateMove(board, player, column), nil
}

func (s *Service) Evaluate(board domain.Board, player domain.PlayerID) (Evaluation, error) {
	if err := checkPosition(board, player); err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{
		Score:        bot.Evaluate(board, player),
		Terminal:     board.IsTerminal(),
		Winner:       board.Winner(),
		LegalColumns: board.LegalColumns(),
	}
	if eval.Winner != domain.Empty {
		if line, ok := board.WinningLine(eval.Winner); ok {
			eval.WinningLine = &line
		}
	}
	if eval.LegalColumns == nil {
		eval.LegalColumns = []int{}
	}
	return eval, nil
}

// Search runs minimax for player. Depth is clamped to [0, MaxDepth].
func (s *Service) Search(board domain.Board, player domain.PlayerID, depth int) (bot.SearchResult, error) {
	if err := checkPosition(board, player); err != nil {
		return bot.SearchResult{Column: domain.NoColumn}, err
	}
	if depth < 0 {
		depth = 0
	}
	if depth > s.maxDepth {
		depth = s.maxDepth
	}
	return bot.Search(board, depth, player), nil
}

func (s *Service) cachedMove(ctx context.Context, key string, board domain.Board) (int, bool) {
	val, err := s.cache.Get(ctx, key)
	if err != nil || val == "" {
		return domain.NoColumn, false
	}
	col, err := strconv.Atoi(val)
	if err != nil || !board.IsLegal(col) {
		log.Warn().Str("component", "engine").Str("key", key).Str("value", val).Msg("discarding bad cache entry")
		return domain.NoColumn, false
	}
	return col, true
}

func moveKey(board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) string {
	return moveKeyPrefix + difficulty.String() + ":" + strconv.Itoa(int(player)) + ":" + board.Key()
}

func checkPosition(board domain.Board, player domain.PlayerID) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, int(player))
	}
	return board.Validate()
}
