package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/engine"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, delay time.Duration) (*httptest.Server, *match.Registry, *match.Runner) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	registry := match.NewRegistry()
	runner := match.NewRunner(engine.NewService(nil, nil, 0, 6), nil, delay)
	h := NewHandler(ctx, NewConnectionManager(), registry, runner, nil)

	router := gin.New()
	router.GET("/ws/match", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, registry, runner
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/match?" + query
}

type frame struct {
	Type   string            `json:"type"`
	Match  *match.View       `json:"match"`
	Move   *match.MoveRecord `json:"move"`
	Reason string            `json:"reason"`
}

func readFrame(t *testing.T, conn *websocket.Conn) (frame, error) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return frame{}, err
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("bad frame %q: %v", data, err)
	}
	return f, nil
}

func TestStreamsMatchToOwner(t *testing.T) {
	srv, registry, _ := newTestServer(t, 0)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "player1=hard&player2=easy"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	first, err := readFrame(t, conn)
	if err != nil {
		t.Fatal(err)
	}
	if first.Type != MessageMatchState || first.Match == nil || first.Match.Player1.Name != "Charles" {
		t.Fatalf("first frame %+v", first)
	}

	moves := 0
	for {
		f, err := readFrame(t, conn)
		if err != nil {
			t.Fatalf("stream ended before game over: %v", err)
		}
		if f.Type == match.UpdateMove {
			moves++
			if f.Move == nil || f.Move.Number != moves {
				t.Fatalf("move frame %+v", f)
			}
			continue
		}
		if f.Type != match.UpdateGameOver {
			t.Fatalf("unexpected frame %+v", f)
		}
		if f.Reason != match.ReasonConnectFour && f.Reason != match.ReasonDraw {
			t.Fatalf("game over reason %q", f.Reason)
		}
		break
	}

	// the server closes normally once the game is over
	if _, err := readFrame(t, conn); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal closure, got %v", err)
	}

	m, ok := registry.Get(first.Match.ID)
	if !ok || len(m.View().Moves) != moves {
		t.Fatalf("registry out of sync: ok=%v moves=%d", ok, moves)
	}
}

func TestOwnerAbort(t *testing.T) {
	srv, registry, _ := newTestServer(t, time.Hour)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "player1=easy&player2=easy"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	first, err := readFrame(t, conn)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(ClientMessage{Type: MessageAbort}); err != nil {
		t.Fatal(err)
	}

	for {
		f, err := readFrame(t, conn)
		if err != nil {
			t.Fatalf("no game over after abort: %v", err)
		}
		if f.Type == match.UpdateGameOver {
			if f.Reason != match.ReasonAborted {
				t.Fatalf("reason %q", f.Reason)
			}
			break
		}
	}

	m, _ := registry.Get(first.Match.ID)
	if !m.Finished() {
		t.Fatal("match still running after abort")
	}
}

func TestWatchFinishedMatch(t *testing.T) {
	srv, registry, runner := newTestServer(t, 0)

	m := registry.Create(domain.Easy, domain.Medium)
	if err := runner.Play(context.Background(), m, nil); err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "id="+m.ID), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	f, err := readFrame(t, conn)
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != MessageMatchState || f.Match.FinishedAt == nil || f.Match.ID != m.ID {
		t.Fatalf("state frame %+v", f)
	}
	if _, err := readFrame(t, conn); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal closure, got %v", err)
	}
}

func TestRejectsBadQuery(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)

	tests := []struct {
		query string
		want  int
	}{
		{"player1=hard&player2=godlike", http.StatusBadRequest},
		{"player2=easy", http.StatusBadRequest},
		{"id=missing", http.StatusNotFound},
		{"id=" + uid.GenerateMatchID(), http.StatusNotFound},
	}
	for _, tt := range tests {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.query), nil)
		if err == nil {
			t.Fatalf("%s: dial succeeded", tt.query)
		}
		if resp == nil || resp.StatusCode != tt.want {
			t.Fatalf("%s: response %v", tt.query, resp)
		}
	}
}

func TestConnectionManagerCount(t *testing.T) {
	cm := NewConnectionManager()
	a, b := &Client{}, &Client{}
	cm.AddConnection("m", a)
	cm.AddConnection("m", b)
	if cm.Count("m") != 2 {
		t.Fatalf("count %d", cm.Count("m"))
	}
	cm.RemoveConnection("m", a)
	cm.RemoveConnection("m", b)
	if cm.Count("m") != 0 {
		t.Fatalf("count %d after removal", cm.Count("m"))
	}
}
