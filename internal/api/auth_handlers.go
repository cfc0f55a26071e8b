package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/service"
)

type AuthHandler struct {
	games  *GameHandler
	issuer *SessionIssuer
}

func NewAuthHandler(games *GameHandler, issuer *SessionIssuer) *AuthHandler {
	return &AuthHandler{games: games, issuer: issuer}
}

// SessionRequest is the Telegram identity forwarded by the Mini App.
type SessionRequest struct {
	TelegramID string `json:"telegram_id"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
}

// CreateSession loads or creates the player's profile and mints a session.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := strings.TrimSpace(req.TelegramID)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTelegramIDRequired})
		return
	}

	g := h.games
	p, err := service.EnsureProfile(g.repo, g.cat, g.table, g.deckSize, service.Identity{
		PlayerID:  id,
		Name:      strings.TrimSpace(req.Name),
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		logging.Error("failed to load profile", err, logging.Fields{constants.LogFieldPlayerID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}

	token, err := h.issuer.Issue(p.PlayerID, p.Name, p.AvatarURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return
	}
	h.issuer.setSessionCookie(c, token)

	profile, err := MarshalIntoSnakeTimestamps(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}
