package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

// StartBotMatch creates a match against the bot with the caller's active deck.
func (h *GameHandler) StartBotMatch(c *gin.Context) {
	pid := playerID(c)
	s, err := h.matches.StartBotMatch(pid)
	if err != nil {
		h.startFailed(c, pid, err)
		return
	}
	c.JSON(http.StatusCreated, s.State())
}

// FindMatch blocks for the matchmaking latency. A client that goes away
// while waiting cancels the search.
func (h *GameHandler) FindMatch(c *gin.Context) {
	pid := playerID(c)
	s, err := h.matches.FindMatch(c.Request.Context(), pid)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusRequestTimeout, gin.H{constants.JSONKeyError: constants.ErrMatchmakingCancelled})
			return
		}
		h.startFailed(c, pid, err)
		return
	}
	c.JSON(http.StatusCreated, s.State())
}

func (h *GameHandler) startFailed(c *gin.Context, pid string, err error) {
	if errors.Is(err, storage.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	logging.Error("failed to create match", err, logging.Fields{constants.LogFieldPlayerID: pid})
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
}

// Concede forfeits the match for the caller.
func (h *GameHandler) Concede(c *gin.Context) {
	g, err := h.matches.Concede(c.Param("matchID"), playerID(c))
	if err != nil {
		status, body := matchErrorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, g)
}
