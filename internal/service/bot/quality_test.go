package bot

import (
	"testing"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

func TestRateMove(t *testing.T) {
	openThree := `
.......
.......
.......
.......
...O...
..XX...`
	quiet := `
.......
.......
.......
.......
.......
.O..X..`

	tests := []struct {
		name   string
		board  string
		player domain.PlayerID
		played int
		want   MoveQuality
	}{
		{name: "winning move", board: threatBoard, player: domain.Player1, played: 3,
			want: MoveQuality{Rating: domain.RatingExcellent, Score: SCORE_WIN_NOW}},
		{name: "blocking move", board: threatBoard, player: domain.Player2, played: 3,
			want: MoveQuality{Rating: domain.RatingExcellent, Score: SCORE_BLOCK_WIN}},
		{name: "ignoring the threat", board: threatBoard, player: domain.Player2, played: 2,
			want: MoveQuality{Rating: domain.RatingPoor, Score: -18}},
		{name: "best heuristic move", board: openThree, player: domain.Player1, played: 4,
			want: MoveQuality{Rating: domain.RatingExcellent, Score: 223}},
		{name: "within ten of the best", board: openThree, player: domain.Player1, played: 1,
			want: MoveQuality{Rating: domain.RatingExcellent, Score: 213}},
		{name: "okay gap", board: openThree, player: domain.Player1, played: 0,
			want: MoveQuality{Rating: domain.RatingOkay, Score: 123}},
		{name: "poor gap", board: openThree, player: domain.Player1, played: 3,
			want: MoveQuality{Rating: domain.RatingPoor, Score: 36}},
		{name: "good gap", board: quiet, player: domain.Player1, played: 0,
			want: MoveQuality{Rating: domain.RatingGood, Score: 0}},
		{name: "illegal column", board: fullDrawBoard, player: domain.Player1, played: 3,
			want: MoveQuality{Rating: domain.RatingNeutral, Score: 0}},
		{name: "out of range column", board: quiet, player: domain.Player1, played: 9,
			want: MoveQuality{Rating: domain.RatingNeutral, Score: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RateMove(mustBoard(t, tt.board), tt.player, tt.played)
			if got != tt.want {
				t.Fatalf("RateMove = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRateMoveWinningAlwaysExcellent(t *testing.T) {
	// player 1 can win in column 4 or column 0; both rate excellent
	b := mustBoard(t, `
.......
.......
.......
.......
.......
.XXX...`)
	for _, col := range []int{0, 4} {
		if got := RateMove(b, domain.Player1, col); got.Rating != domain.RatingExcellent || got.Score != SCORE_WIN_NOW {
			t.Fatalf("column %d rated %+v", col, got)
		}
	}
}

func TestScoreMovesCoversLegalColumns(t *testing.T) {
	b := mustBoard(t, `
X.X...X
O.O...O
X.X.X.X
O.O.O.O
X.X.X.X
O.O.O.O`)
	scores := ScoreMoves(b, domain.Player1)
	if len(scores) != len(b.LegalColumns()) {
		t.Fatalf("scored %d columns, %d legal", len(scores), len(b.LegalColumns()))
	}
	for _, col := range []int{0, 2, 6} {
		if _, ok := scores[col]; ok {
			t.Fatalf("full column %d was scored", col)
		}
	}
}
