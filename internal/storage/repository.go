package storage

import (
	"errors"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrDuplicateDeck     = errors.New("a deck with the same cards already exists")
	ErrResultAlreadySeen = errors.New("match result already recorded")
)

type Repository interface {
	GetProfile(playerID string) (*game.Profile, error)
	// CreateProfile stores a new profile with its starter collection. The
	// starter deck, when given, becomes the active deck.
	CreateProfile(p *game.Profile, starterCards []string, starterDeck *game.Deck) error
	UpdateProfileIdentity(playerID, name, avatarURL string) (*game.Profile, error)

	ListDecks(playerID string) ([]game.Deck, error)
	// SaveDeck creates or updates a deck. Two decks of one profile may not
	// hold the same cards.
	SaveDeck(playerID string, d *game.Deck) error
	SetActiveDeck(playerID string, deckID uint) error
	GetActiveDeck(playerID string) (*game.Deck, error)

	// ApplyMatchResult writes progression, counters, rewards and the history
	// row in one transaction. A second call for the same match and player
	// returns ErrResultAlreadySeen and changes nothing.
	ApplyMatchResult(playerID string, progress game.ProfileProgress, rec *game.MatchRecord) error
	ListMatches(playerID string, limit int) ([]game.MatchRecord, error)

	// Leaderboard
	GetTopPlayers(limit int) ([]game.Profile, error)
}
