package domain

import (
	"fmt"
	"strings"
)

var BotNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
}

// BotName returns the display name of the AI seat playing at the given tier.
func BotName(d Difficulty) string {
	if name, ok := BotNames[d]; ok {
		return name
	}
	return "BOT"
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return "empty"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// CenterColumn is the column every heuristic favours.
	CenterColumn = Columns / 2

	// NoColumn is returned wherever a move could not be chosen.
	NoColumn = -1
)

// Difficulty selects an AI policy. It is a closed set; parse external
// strings with ParseDifficulty.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	switch d {
	case Easy, Medium, Hard:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Rating is the categorical quality of a played move.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingOkay      Rating = "okay"
	RatingPoor      Rating = "poor"
	RatingNeutral   Rating = "neutral"
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrInvalidBoard      Error = "invalid board"
	ErrInvalidPlayer     Error = "invalid player"
	ErrUnknownDifficulty Error = "unknown difficulty"
	ErrGameFinished      Error = "game is finished"
	ErrNotYourTurn       Error = "not your turn"
)
