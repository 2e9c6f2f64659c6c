package bot

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const threatBoard = `
.......
.......
.......
.......
OO.....
XXX....`

// both sides have an immediate win: player 1 at column 4, player 2 at column 0
const doubleThreatBoard = `
.......
.......
.......
O......
O......
OXXX...`

type fixedSource struct {
	index int
	calls int
}

func (f *fixedSource) Intn(n int) int {
	f.calls++
	return f.index % n
}

func zeroDepth(int) int { return 0 }

func TestFindWinningMove(t *testing.T) {
	b := mustBoard(t, threatBoard)
	if got := FindWinningMove(b, domain.Player1); got != 3 {
		t.Fatalf("FindWinningMove(player 1) = %d, want 3", got)
	}
	if got := FindWinningMove(b, domain.Player2); got != domain.NoColumn {
		t.Fatalf("FindWinningMove(player 2) = %d, want none", got)
	}
	if got := FindWinningMove(domain.NewBoard(), domain.Player1); got != domain.NoColumn {
		t.Fatalf("empty board has a winning move at %d", got)
	}
}

func TestHardShortcutsRunBeforeSearch(t *testing.T) {
	rng := &fixedSource{index: 6}
	p := NewPolicy(WithRandomSource(rng), WithDepthSchedule(zeroDepth))

	tests := []struct {
		name   string
		board  string
		player domain.PlayerID
		want   int
	}{
		{name: "takes own win", board: threatBoard, player: domain.Player1, want: 3},
		{name: "blocks single threat", board: threatBoard, player: domain.Player2, want: 3},
		{name: "win beats block for player 1", board: doubleThreatBoard, player: domain.Player1, want: 4},
		{name: "win beats block for player 2", board: doubleThreatBoard, player: domain.Player2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, tier := range []domain.Difficulty{domain.Medium, domain.Hard} {
				got, err := p.SelectMove(mustBoard(t, tt.board), tt.player, tier)
				if err != nil {
					t.Fatalf("%v: %v", tier, err)
				}
				if got != tt.want {
					t.Fatalf("%v: got column %d, want %d", tier, got, tt.want)
				}
			}
		})
	}
	if rng.calls != 0 {
		t.Fatalf("random source consulted %d times despite a tactical move", rng.calls)
	}
}

func TestHardFallsBackToRandomWhenSearchHasNoMove(t *testing.T) {
	rng := &fixedSource{index: 2}
	p := NewPolicy(WithRandomSource(rng), WithDepthSchedule(zeroDepth))
	got, err := p.SelectMove(domain.NewBoard(), domain.Player1, domain.Hard)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || rng.calls != 1 {
		t.Fatalf("got column %d after %d random calls, want 2 after 1", got, rng.calls)
	}
}

func TestHardOnEmptyBoard(t *testing.T) {
	p := NewPolicy()
	if d := p.DepthFor(domain.NewBoard()); d != OPENING_DEPTH {
		t.Fatalf("opening depth %d, want %d", d, OPENING_DEPTH)
	}
	got, err := p.SelectMove(domain.NewBoard(), domain.Player1, domain.Hard)
	if err != nil {
		t.Fatal(err)
	}
	if got != domain.CenterColumn {
		t.Fatalf("hard opened in column %d", got)
	}
}

func TestDefaultDepthSchedule(t *testing.T) {
	for filled, want := range map[int]int{0: 4, 8: 4, 9: 3, 41: 3} {
		if got := DefaultDepthSchedule(filled); got != want {
			t.Errorf("DefaultDepthSchedule(%d) = %d, want %d", filled, got, want)
		}
	}
}

func TestMediumGreedyPrefersCenter(t *testing.T) {
	p := NewPolicy()
	got, err := p.SelectMove(domain.NewBoard(), domain.Player1, domain.Medium)
	if err != nil {
		t.Fatal(err)
	}
	if got != domain.CenterColumn {
		t.Fatalf("medium opened in column %d", got)
	}

	b := mustBoard(t, `
.......
.......
.......
.......
...O...
..XX...`)
	got, err = p.SelectMove(b, domain.Player1, domain.Medium)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Fatalf("medium picked %d, want the open-three column 4", got)
	}
}

func TestEasyStaysLegal(t *testing.T) {
	p := NewPolicy(WithRandomSource(rand.New(rand.NewSource(7))))
	b := mustBoard(t, `
X.X...X
O.O...O
X.X.X.X
O.O.O.O
X.X.X.X
O.O.O.O`)
	legal := b.LegalColumns()
	for i := 0; i < 200; i++ {
		got, err := p.SelectMove(b, domain.Player2, domain.Easy)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Contains(legal, got) {
			t.Fatalf("easy played %d, legal %v", got, legal)
		}
	}

	rng := &fixedSource{index: 1}
	p = NewPolicy(WithRandomSource(rng))
	if got, _ := p.SelectMove(b, domain.Player1, domain.Easy); got != legal[1] {
		t.Fatalf("easy ignored the injected source: got %d, want %d", got, legal[1])
	}
}

func TestSelectMoveOnFullBoard(t *testing.T) {
	b := mustBoard(t, fullDrawBoard)
	for _, tier := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard} {
		got, err := NewPolicy().SelectMove(b, domain.Player1, tier)
		if err != nil {
			t.Fatalf("%v: %v", tier, err)
		}
		if got != domain.NoColumn {
			t.Fatalf("%v: got column %d on a full board", tier, got)
		}
	}
}

func TestSelectMoveRejectsBadInput(t *testing.T) {
	p := NewPolicy()
	if _, err := p.SelectMove(domain.NewBoard(), domain.Player1, domain.Difficulty(42)); !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
	if _, err := p.SelectMove(domain.NewBoard(), domain.Empty, domain.Hard); !errors.Is(err, domain.ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
}
