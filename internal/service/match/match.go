package match

import (
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonAborted     = "aborted"
)

// Seat is one AI side of a match.
type Seat struct {
	Name       string            `json:"name"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

func NewSeat(d domain.Difficulty) Seat {
	return Seat{Name: domain.BotName(d), Difficulty: d}
}

// MoveRecord is one played move, rated against the board it was played on.
type MoveRecord struct {
	Number int             `json:"number"`
	Player domain.PlayerID `json:"player"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
	Rating domain.Rating   `json:"rating"`
	Score  int             `json:"score"`
}

// Match is an AI-vs-AI game. All fields below mu are guarded by it; read
// them through View.
type Match struct {
	ID        string
	Seats     [2]Seat
	CreatedAt time.Time

	mu         sync.Mutex
	game       *domain.Game
	moves      []MoveRecord
	reason     string
	finishedAt time.Time
}

func NewMatch(player1, player2 domain.Difficulty) *Match {
	return &Match{
		ID:        uid.GenerateMatchID(),
		Seats:     [2]Seat{NewSeat(player1), NewSeat(player2)},
		CreatedAt: time.Now(),
		game:      domain.NewGame(),
	}
}

// Seat returns the seat playing as player.
func (m *Match) Seat(player domain.PlayerID) Seat {
	if player == domain.Player2 {
		return m.Seats[1]
	}
	return m.Seats[0]
}

// View is a consistent copy of a match for callers outside the runner.
type View struct {
	ID          string            `json:"id"`
	Player1     Seat              `json:"player1"`
	Player2     Seat              `json:"player2"`
	Board       domain.Board      `json:"board"`
	Status      domain.GameStatus `json:"status"`
	NextTurn    domain.PlayerID   `json:"nextTurn"`
	Winner      string            `json:"winner,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	WinningLine *domain.Line      `json:"winningLine,omitempty"`
	Moves       []MoveRecord      `json:"moves"`
	CreatedAt   time.Time         `json:"createdAt"`
	FinishedAt  *time.Time        `json:"finishedAt,omitempty"`
}

func (m *Match) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	moves := make([]MoveRecord, len(m.moves))
	copy(moves, m.moves)

	v := View{
		ID:        m.ID,
		Player1:   m.Seats[0],
		Player2:   m.Seats[1],
		Board:     m.game.Board,
		Status:    m.game.Status,
		NextTurn:  m.game.CurrentPlayer,
		Reason:    m.reason,
		Moves:     moves,
		CreatedAt: m.CreatedAt,
	}
	if m.game.WinningLine != nil {
		line := *m.game.WinningLine
		v.WinningLine = &line
	}
	if m.game.Status == domain.StatusWon {
		v.Winner = m.Seat(m.game.Winner).Name
	}
	if !m.finishedAt.IsZero() {
		finished := m.finishedAt
		v.FinishedAt = &finished
	}
	return v
}

// Finished reports whether the match ended, including by abort.
func (m *Match) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.finishedAt.IsZero()
}

func (m *Match) FinishedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finishedAt
}

// turn returns the position the next move is chosen from.
func (m *Match) turn() (domain.Board, domain.PlayerID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Board, m.game.CurrentPlayer, m.finishedAt.IsZero() && !m.game.IsFinished()
}

// apply plays col for player and records it. The returned bool is true when
// the move ended the game.
func (m *Match) apply(player domain.PlayerID, col int, rating domain.Rating, score int) (MoveRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, err := m.game.MakeMove(player, col)
	if err != nil {
		return MoveRecord{}, false, err
	}

	rec := MoveRecord{
		Number: m.game.MoveCount,
		Player: player,
		Column: col,
		Row:    row,
		Rating: rating,
		Score:  score,
	}
	m.moves = append(m.moves, rec)

	switch m.game.Status {
	case domain.StatusWon:
		m.finishLocked(ReasonConnectFour)
		return rec, true, nil
	case domain.StatusDraw:
		m.finishLocked(ReasonDraw)
		return rec, true, nil
	}
	return rec, false, nil
}

func (m *Match) abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finishedAt.IsZero() {
		m.finishLocked(ReasonAborted)
	}
}

func (m *Match) finishLocked(reason string) {
	m.reason = reason
	m.finishedAt = time.Now()
}
