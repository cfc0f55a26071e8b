package api

import (
	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
	"github.com/SASASDAa/tgsg-sub000/internal/service"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo       storage.Repository
	matches    *service.Manager
	cat        *catalog.Catalog
	table      rewards.Table
	deckSize   int
	copyLimits catalog.CopyLimits
}

type HandlerOptions struct {
	Rewards    rewards.Table
	DeckSize   int
	CopyLimits catalog.CopyLimits
}

// NewGameHandler creates a GameHandler serving matches from the manager and
// profiles from repo.
func NewGameHandler(repo storage.Repository, matches *service.Manager, opts HandlerOptions) *GameHandler {
	if opts.DeckSize <= 0 {
		opts.DeckSize = 8
	}
	if opts.CopyLimits == (catalog.CopyLimits{}) {
		opts.CopyLimits = catalog.DefaultCopyLimits
	}
	return &GameHandler{
		repo:       repo,
		matches:    matches,
		cat:        matches.Engine().Catalog(),
		table:      opts.Rewards,
		deckSize:   opts.DeckSize,
		copyLimits: opts.CopyLimits,
	}
}
