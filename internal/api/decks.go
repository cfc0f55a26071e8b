package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

type DeckRequest struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	CardIDs  []string `json:"card_ids"`
	IsActive bool     `json:"is_active"`
}

// ListDecks returns the caller's decks.
func (h *GameHandler) ListDecks(c *gin.Context) {
	decks, err := h.repo.ListDecks(playerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchDecks})
		return
	}
	writeModel(c, http.StatusOK, decks, constants.ErrFailedFetchDecks)
}

// SaveDeck creates a deck, or renames/rebuilds one when id is set. The deck
// must be legal and built from cards the caller owns.
func (h *GameHandler) SaveDeck(c *gin.Context) {
	var req DeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidDeck, constants.JSONKeyDetails: "name must be 1-32 characters"})
		return
	}
	if err := h.cat.ValidateDeck(req.CardIDs, h.deckSize, h.copyLimits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidDeck, constants.JSONKeyDetails: err.Error()})
		return
	}

	pid := playerID(c)
	p, err := h.repo.GetProfile(pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	if err := checkOwnership(p, req.CardIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidDeck, constants.JSONKeyDetails: err.Error()})
		return
	}

	d := &game.Deck{Name: name, CardIDs: req.CardIDs, IsActive: req.IsActive}
	d.ID = req.ID
	if err := h.repo.SaveDeck(pid, d); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateDeck):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrDuplicateDeck})
		case errors.Is(err, storage.ErrDeckNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrDeckNotFound})
		default:
			logging.Error("failed to save deck", err, logging.Fields{constants.LogFieldPlayerID: pid})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveDeck})
		}
		return
	}
	writeModel(c, http.StatusOK, d, constants.ErrFailedSaveDeck)
}

// ActivateDeck makes one of the caller's decks the active one.
func (h *GameHandler) ActivateDeck(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("deckID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.SetActiveDeck(playerID(c), uint(id)); err != nil {
		if errors.Is(err, storage.ErrDeckNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrDeckNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveDeck})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

func checkOwnership(p *game.Profile, ids []string) error {
	owned := make(map[string]int, len(p.OwnedCards))
	for _, oc := range p.OwnedCards {
		owned[oc.CardID] = oc.Count
	}
	need := map[string]int{}
	for _, id := range ids {
		need[id]++
		if need[id] > owned[id] {
			return fmt.Errorf("not enough copies of %s", id)
		}
	}
	return nil
}
