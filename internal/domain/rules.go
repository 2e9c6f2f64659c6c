package domain

// Position addresses a single cell.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Line is four consecutive cells owned by one player.
type Line [ToWin]Position

// WinningLine returns the first four-in-a-row owned by player. Scan order is
// fixed: horizontal, vertical and the \ diagonal go top-to-bottom, then
// left-to-right; the / diagonal starts from the bottom rows.
func (b Board) WinningLine(player PlayerID) (Line, bool) {
	// horizontal
	for r := 0; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == player && b[r][c+1] == player && b[r][c+2] == player && b[r][c+3] == player {
				return Line{{r, c}, {r, c + 1}, {r, c + 2}, {r, c + 3}}, true
			}
		}
	}

	// vertical
	for r := 0; r <= Rows-ToWin; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] == player && b[r+1][c] == player && b[r+2][c] == player && b[r+3][c] == player {
				return Line{{r, c}, {r + 1, c}, {r + 2, c}, {r + 3, c}}, true
			}
		}
	}

	// diagonal \
	for r := 0; r <= Rows-ToWin; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == player && b[r+1][c+1] == player && b[r+2][c+2] == player && b[r+3][c+3] == player {
				return Line{{r, c}, {r + 1, c + 1}, {r + 2, c + 2}, {r + 3, c + 3}}, true
			}
		}
	}

	// diagonal /
	for r := ToWin - 1; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == player && b[r-1][c+1] == player && b[r-2][c+2] == player && b[r-3][c+3] == player {
				return Line{{r, c}, {r - 1, c + 1}, {r - 2, c + 2}, {r - 3, c + 3}}, true
			}
		}
	}

	return Line{}, false
}

func (b Board) HasWon(player PlayerID) bool {
	_, ok := b.WinningLine(player)
	return ok
}

// Winner reports which player owns a four-in-a-row, Player1 checked first.
func (b Board) Winner() PlayerID {
	if b.HasWon(Player1) {
		return Player1
	}
	if b.HasWon(Player2) {
		return Player2
	}
	return Empty
}

// IsTerminal is recomputed on every call; boards are small enough that
// caching it would buy nothing.
func (b Board) IsTerminal() bool {
	return b.Winner() != Empty || b.IsFull()
}

// WinsAt reports whether the disk at (row, column) completes a line for
// player. Only the four lines through that cell are inspected, so it is the
// cheap check to run right after a drop.
func (b Board) WinsAt(row, column int, player PlayerID) bool {
	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal \
		{1, -1}, // diagonal /
	}
	for _, dir := range directions {
		total := 1 +
			b.CountDiskInDirection(row, column, dir[0], dir[1], player) +
			b.CountDiskInDirection(row, column, -dir[0], -dir[1], player)
		if total >= ToWin {
			return true
		}
	}
	return false
}
