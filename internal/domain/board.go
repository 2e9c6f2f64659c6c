package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is the 6x7 grid. Row 0 is the top, row Rows-1 the bottom.
// It is a plain array, so assigning a Board copies it.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

// UnmarshalJSON only accepts exactly Rows arrays of Columns cells. The
// default array decoding would drop extra cells and zero-fill missing ones.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]PlayerID
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != Rows {
		return fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	var decoded Board
	for row, cells := range rows {
		if len(cells) != Columns {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row, len(cells))
		}
		copy(decoded[row][:], cells)
	}
	*b = decoded
	return nil
}

func IsValidColumn(column int) bool {
	return column >= 0 && column < Columns
}

// LegalColumns lists, in ascending order, the columns whose top cell is
// empty. An empty result means the board is full.
func (b Board) LegalColumns() []int {
	legal := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		// here b[0] represents the top row (0 -> top and 5 -> bottom)
		if b[0][col] == Empty {
			legal = append(legal, col)
		}
	}
	return legal
}

func (b Board) IsLegal(column int) bool {
	return IsValidColumn(column) && b[0][column] == Empty
}

// LowestEmptyRow returns the row a disk dropped into column would land on.
func (b Board) LowestEmptyRow(column int) (int, bool) {
	if !IsValidColumn(column) {
		return -1, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Drop places player's disk in column in place and returns the row it
// landed on.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if !IsValidColumn(column) {
		return -1, fmt.Errorf("%w: column %d out of range", ErrInvalidMove, column)
	}
	row, ok := b.LowestEmptyRow(column)
	if !ok {
		return -1, fmt.Errorf("%w: %w (column %d)", ErrInvalidMove, ErrColumnFull, column)
	}
	b[row][column] = player
	return row, nil
}

// ApplyMove returns a copy of the board with the move played. The receiver
// is left untouched.
func (b Board) ApplyMove(column int, player PlayerID) (Board, int, error) {
	next := b
	row, err := next.Drop(column, player)
	if err != nil {
		return b, -1, err
	}
	return next, row, nil
}

func (b Board) FilledCells() int {
	filled := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] != Empty {
				filled++
			}
		}
	}
	return filled
}

func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			return false
		}
	}
	return true
}

// Validate rejects unknown cell values and disks floating above an empty cell.
func (b Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := Rows - 1; row >= 0; row-- {
			switch b[row][col] {
			case Empty:
				seenEmpty = true
			case Player1, Player2:
				if seenEmpty {
					return fmt.Errorf("%w: floating disk at row %d column %d", ErrInvalidBoard, row, col)
				}
			default:
				return fmt.Errorf("%w: cell value %d at row %d column %d", ErrInvalidBoard, b[row][col], row, col)
			}
		}
	}
	return nil
}

// Key encodes the board as 42 digits, row-major from the top.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(byte('0' + b[row][col]))
		}
	}
	return sb.String()
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			switch b[row][col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < Columns; col++ {
		sb.WriteByte(byte('1' + col))
	}
	return sb.String()
}

// ParseBoard reads the rendering produced by String (or a bare 6-line grid).
// It is mostly a convenience for tests and the arena CLI.
func ParseBoard(s string) (Board, error) {
	var b Board
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < Rows {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(lines))
	}
	for row := 0; row < Rows; row++ {
		line := strings.TrimSpace(lines[row])
		if len(line) != Columns {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row, len(line))
		}
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case 'X', 'x', '1':
				b[row][col] = Player1
			case 'O', 'o', '2':
				b[row][col] = Player2
			case '.', '0':
			default:
				return b, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrInvalidBoard, line[col], row, col)
			}
		}
	}
	return b, b.Validate()
}

// this counts the number of disks in a specific direction
func (b Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
