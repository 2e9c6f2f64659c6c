package domain

// Game is the turn-sequenced board a caller owns across a whole match. The
// engine itself never holds one; it is handed Game.Board by value.
type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	WinningLine   *Line
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if g.Board.WinsAt(row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		if line, ok := g.Board.WinningLine(player); ok {
			g.WinningLine = &line
		}
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Opponent()

	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
