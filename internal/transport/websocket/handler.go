package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
	"github.com/rs/zerolog/log"
)

const (
	MessageMatchState = "match_state"
	MessageAbort      = "abort"
	MessageError      = "error"
)

type ServerMessage struct {
	Type    string      `json:"type"`
	Match   *match.View `json:"match,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ClientMessage struct {
	Type string `json:"type"`
}

// Handler streams AI-vs-AI matches over WebSocket.
type Handler struct {
	ConnManager *ConnectionManager
	Registry    *match.Registry
	Runner      *match.Runner
	Upgrader    websocket.Upgrader

	// ctx bounds the matches this handler starts
	ctx context.Context
}

func NewHandler(ctx context.Context, cm *ConnectionManager, registry *match.Registry, runner *match.Runner, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager: cm,
		Registry:    registry,
		Runner:      runner,
		ctx:         ctx,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket either starts a match (?player1=&player2=) owned by this
// socket or watches an existing one (?id=).
func (h *Handler) HandleWebSocket(c *gin.Context) {
	m, owner, ok := h.resolveMatch(c)
	if !ok {
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("upgrade error")
		if owner {
			h.Registry.Remove(m.ID)
		}
		return
	}

	h.handleConnection(NewClient(conn), conn, m, owner)
}

func (h *Handler) resolveMatch(c *gin.Context) (*match.Match, bool, bool) {
	if id := c.Query("id"); id != "" {
		if !uid.IsMatchID(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid match id"})
			return nil, false, false
		}
		m, exists := h.Registry.Get(id)
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return nil, false, false
		}
		return m, false, true
	}

	player1, err := domain.ParseDifficulty(c.Query("player1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player1: " + err.Error()})
		return nil, false, false
	}
	player2, err := domain.ParseDifficulty(c.Query("player2"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player2: " + err.Error()})
		return nil, false, false
	}
	return h.Registry.Create(player1, player2), true, true
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(client *Client, conn *websocket.Conn, m *match.Match, owner bool) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	h.ConnManager.AddConnection(m.ID, client)
	defer func() {
		h.ConnManager.RemoveConnection(m.ID, client)
		client.Close(websocket.CloseNormalClosure, "")
		log.Debug().Str("component", "ws").Str("match", m.ID).Bool("owner", owner).Msg("connection closed")
	}()

	view := m.View()
	if err := client.Send(ServerMessage{Type: MessageMatchState, Match: &view}); err != nil {
		return
	}

	if owner {
		// the owner's socket bounds the match; disconnecting aborts it
		go func() {
			if err := h.Runner.Play(ctx, m, h.ConnManager.Observer(m.ID)); err != nil {
				log.Info().Str("component", "ws").Str("match", m.ID).Err(err).Msg("match stopped")
			}
		}()
	} else if m.Finished() {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Str("component", "ws").Err(err).Msg("client disconnected unexpectedly")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(ServerMessage{Type: MessageError, Message: "Invalid message format"})
			continue
		}

		switch msg.Type {
		case MessageAbort:
			if !owner {
				client.Send(ServerMessage{Type: MessageError, Message: "Only the match owner can abort"})
				continue
			}
			cancel()
		default:
			client.Send(ServerMessage{Type: MessageError, Message: "Unknown message type"})
		}
	}
}
