package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/engine"
	"github.com/rs/zerolog/log"
)

type EngineHandler struct {
	Engine *engine.Service
}

func NewEngineHandler(svc *engine.Service) *EngineHandler {
	return &EngineHandler{Engine: svc}
}

// positionRequest is the body every engine endpoint accepts. Board rows run
// top to bottom; cells are 0 (empty), 1 or 2.
type positionRequest struct {
	Board      domain.Board      `json:"board"`
	Player     domain.PlayerID   `json:"player"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Column     *int              `json:"column"`
	Depth      *int              `json:"depth"`
}

type moveResponse struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func (h *EngineHandler) Move(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}

	col, err := h.Engine.SelectMove(c.Request.Context(), req.Board, req.Player, req.Difficulty)
	if err != nil {
		writeError(c, err)
		return
	}

	row := domain.NoColumn
	if col != domain.NoColumn {
		row, _ = req.Board.LowestEmptyRow(col)
	}
	c.JSON(http.StatusOK, moveResponse{Column: col, Row: row})
}

func (h *EngineHandler) Hint(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}

	hint, err := h.Engine.Hint(c.Request.Context(), req.Board, req.Player, req.Difficulty)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hint)
}

func (h *EngineHandler) Rate(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	quality, err := h.Engine.RateMove(req.Board, req.Player, *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quality)
}

func (h *EngineHandler) Evaluate(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}

	eval, err := h.Engine.Evaluate(req.Board, req.Player)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

// Search defaults to the hard tier's depth for the position when the body
// names none.
func (h *EngineHandler) Search(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}

	depth := h.Engine.Policy.DepthFor(req.Board)
	if req.Depth != nil {
		depth = *req.Depth
	}

	result, err := h.Engine.Search(req.Board, req.Player, depth)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Unknown difficulties and misshapen boards fail inside the decoder
		var domainErr domain.Error
		if errors.As(err, &domainErr) {
			writeError(c, err)
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// writeError maps domain errors to 400 and anything else to 500.
func writeError(c *gin.Context, err error) {
	var domainErr domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Str("component", "http").Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
