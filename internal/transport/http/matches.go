package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
	"github.com/rs/zerolog/log"
)

type MatchHandler struct {
	Registry *match.Registry
	Runner   *match.Runner

	// Observe, when set, supplies the observer for background matches so
	// spectators can follow them
	Observe func(matchID string) match.Observer

	// ctx bounds background matches; cancelling it aborts them
	ctx context.Context
}

func NewMatchHandler(ctx context.Context, registry *match.Registry, runner *match.Runner) *MatchHandler {
	return &MatchHandler{Registry: registry, Runner: runner, ctx: ctx}
}

type startMatchRequest struct {
	Player1 domain.Difficulty `json:"player1"`
	Player2 domain.Difficulty `json:"player2"`
}

type startMatchResponse struct {
	ID      string     `json:"id"`
	Player1 match.Seat `json:"player1"`
	Player2 match.Seat `json:"player2"`
}

// StartMatch registers an AI-vs-AI match and plays it in the background.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	var req startMatchRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Player1 == 0 || req.Player2 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player1 and player2 difficulties are required"})
		return
	}

	m := h.Registry.Create(req.Player1, req.Player2)
	var observe match.Observer
	if h.Observe != nil {
		observe = h.Observe(m.ID)
	}
	go func() {
		if err := h.Runner.Play(h.ctx, m, observe); err != nil {
			log.Warn().Str("component", "match").Str("match", m.ID).Err(err).Msg("background match stopped")
		}
	}()

	c.JSON(http.StatusAccepted, startMatchResponse{ID: m.ID, Player1: m.Seats[0], Player2: m.Seats[1]})
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.Registry.List())
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	id := c.Param("id")
	if !uid.IsMatchID(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid match id"})
		return
	}
	m, ok := h.Registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}
	c.JSON(http.StatusOK, m.View())
}
