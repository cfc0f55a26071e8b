package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

type ActionRequest struct {
	Type         engine.ActionType `json:"type" binding:"required"`
	CardUUID     string            `json:"card_uuid"`
	Position     *int              `json:"position"`
	AttackerUUID string            `json:"attacker_uuid"`
	TargetUUID   string            `json:"target_uuid"`
}

type ActionResponse struct {
	State  *game.GameState `json:"state"`
	Events []engine.Event  `json:"events"`
}

// SubmitAction applies one action for the caller's seat. The seat always
// comes from the session, never from the body.
func (h *GameHandler) SubmitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	pid := playerID(c)
	a := engine.Action{
		Type:         req.Type,
		SeatID:       pid,
		CardUUID:     req.CardUUID,
		Position:     req.Position,
		AttackerUUID: req.AttackerUUID,
		TargetUUID:   req.TargetUUID,
	}
	g, events, err := h.matches.SubmitAction(c.Param("matchID"), pid, a)
	if err != nil {
		status, body := matchErrorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, ActionResponse{State: g, Events: events})
}
