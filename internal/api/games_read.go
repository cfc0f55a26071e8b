package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

// ListCards returns the card catalog.
func (h *GameHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.All())
}

// ListLeaderboard returns the top players by rating, top 10 by default.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	players, err := h.repo.GetTopPlayers(queryLimit(c, 10, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeader})
		return
	}
	writeModel(c, http.StatusOK, players, constants.ErrFailedFetchLeader)
}

// GetProfile returns the authenticated player's profile and collection.
func (h *GameHandler) GetProfile(c *gin.Context) {
	p, err := h.repo.GetProfile(playerID(c))
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	writeModel(c, http.StatusOK, p, constants.ErrFailedFetchProfile)
}

var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_.'\- ]{3,24}$`)

// UpdateProfile changes the display name and, optionally, the avatar.
func (h *GameHandler) UpdateProfile(c *gin.Context) {
	var body struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	trimmed := strings.TrimSpace(body.Name)
	if !playerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerName})
		return
	}
	p, err := h.repo.UpdateProfileIdentity(playerID(c), trimmed, strings.TrimSpace(body.AvatarURL))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateProfile})
		return
	}
	writeModel(c, http.StatusOK, p, constants.ErrFailedUpdateProfile)
}

// GetMatch returns the current snapshot of a match the caller plays in.
func (h *GameHandler) GetMatch(c *gin.Context) {
	s, err := h.matches.Get(c.Param("matchID"))
	if err != nil {
		status, body := matchErrorResponse(err)
		c.JSON(status, body)
		return
	}
	if !s.HasPlayer(playerID(c)) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// ListHistory returns the caller's finished matches, newest first.
func (h *GameHandler) ListHistory(c *gin.Context) {
	recs, err := h.repo.ListMatches(playerID(c), queryLimit(c, 20, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	writeModel(c, http.StatusOK, recs, constants.ErrFailedFetchHistory)
}
