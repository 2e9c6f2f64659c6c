package match

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/events"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/rs/zerolog/log"
)

const DefaultMoveDelay = 350 * time.Millisecond

type MoveSelector interface {
	SelectMove(ctx context.Context, board domain.Board, player domain.PlayerID, difficulty domain.Difficulty) (int, error)
}

const (
	UpdateMove     = "move_made"
	UpdateGameOver = "game_over"
)

// Update is what an Observer sees after every move and once at the end.
type Update struct {
	Type     string          `json:"type"`
	MatchID  string          `json:"matchId"`
	Move     *MoveRecord     `json:"move,omitempty"`
	Board    domain.Board    `json:"board"`
	NextTurn domain.PlayerID `json:"nextTurn,omitempty"`
	Winner   string          `json:"winner,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

type Observer func(Update)

// Runner plays matches to completion. Publisher and Delay are optional.
type Runner struct {
	Engine    MoveSelector
	Publisher events.Publisher
	Delay     time.Duration
}

func NewRunner(engine MoveSelector, publisher events.Publisher, delay time.Duration) *Runner {
	return &Runner{Engine: engine, Publisher: publisher, Delay: delay}
}

// Play alternates the two seats until the game ends or ctx is cancelled. A
// cancelled match is finished with ReasonAborted and ctx's error returned.
func (r *Runner) Play(ctx context.Context, m *Match, observe Observer) error {
	r.publish(ctx, events.MatchStartEvent(m.ID, m.Seats[0].Name, m.Seats[1].Name))
	log.Info().Str("component", "match").Str("match", m.ID).
		Str("player1", m.Seats[0].Name).Str("player2", m.Seats[1].Name).Msg("match started")

	for {
		board, player, active := m.turn()
		if !active {
			break
		}
		if err := ctx.Err(); err != nil {
			r.stop(m, observe)
			return err
		}

		seat := m.Seat(player)
		col, err := r.Engine.SelectMove(ctx, board, player, seat.Difficulty)
		if err != nil {
			r.stop(m, observe)
			return fmt.Errorf("match %s move %d: %w", m.ID, len(m.View().Moves)+1, err)
		}
		if col == domain.NoColumn {
			r.stop(m, observe)
			return fmt.Errorf("match %s: %w: no legal column for %s", m.ID, domain.ErrInvalidMove, seat.Name)
		}

		quality := bot.RateMove(board, player, col)
		rec, done, err := m.apply(player, col, quality.Rating, quality.Score)
		if err != nil {
			r.stop(m, observe)
			return fmt.Errorf("match %s: %w", m.ID, err)
		}

		view := m.View()
		notify(observe, Update{
			Type:     UpdateMove,
			MatchID:  m.ID,
			Move:     &rec,
			Board:    view.Board,
			NextTurn: view.NextTurn,
		})
		r.publish(ctx, events.MoveEvent(m.ID, rec.Number, int(rec.Player), rec.Row, rec.Column, string(rec.Rating)))

		if done {
			break
		}
		if !r.wait(ctx) {
			r.stop(m, observe)
			return ctx.Err()
		}
	}

	view := m.View()
	notify(observe, gameOver(view))

	winner := view.Winner
	if winner == "" {
		winner = ReasonDraw
	}
	r.publish(ctx, events.MatchEndEvent(m.ID, winner, view.Reason, len(view.Moves), m.FinishedAt().Sub(m.CreatedAt)))
	log.Info().Str("component", "match").Str("match", m.ID).Str("winner", winner).
		Int("moves", len(view.Moves)).Msg("match finished")
	return nil
}

func (r *Runner) wait(ctx context.Context) bool {
	if r.Delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(r.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (r *Runner) stop(m *Match, observe Observer) {
	m.abort()
	notify(observe, gameOver(m.View()))
	log.Warn().Str("component", "match").Str("match", m.ID).Msg("match aborted")
}

func (r *Runner) publish(ctx context.Context, event events.Event) {
	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.Publish(ctx, event); err != nil {
		log.Warn().Str("component", "match").Err(err).Str("type", event.Type).Msg("failed to publish event")
	}
}

func gameOver(view View) Update {
	return Update{
		Type:    UpdateGameOver,
		MatchID: view.ID,
		Board:   view.Board,
		Winner:  view.Winner,
		Reason:  view.Reason,
	}
}

func notify(observe Observer, u Update) {
	if observe != nil {
		observe(u)
	}
}
