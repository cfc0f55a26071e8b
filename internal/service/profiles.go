package service

import (
	"errors"
	"fmt"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/dedupe"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

const (
	StarterCoins    = 200
	StarterDeckName = "My First Deck"
	starterCopies   = 2
)

var ErrEmptyPlayerID = errors.New("player id is required")

// Identity is what the client knows about a player on first contact.
type Identity struct {
	PlayerID  string
	Name      string
	AvatarURL string
}

// StarterKit returns the starter collection (two copies of every common)
// and the first deckSize cards of it as the starter deck.
func StarterKit(cat *catalog.Catalog, deckSize int) (collection, deck []string) {
	for _, id := range cat.IDsByRarity(game.RarityCommon) {
		for i := 0; i < starterCopies; i++ {
			collection = append(collection, id)
		}
	}
	deck = collection
	if len(deck) > deckSize {
		deck = deck[:deckSize]
	}
	return collection, append([]string(nil), deck...)
}

// DefaultPlayerName is used when the client sends no name.
func DefaultPlayerName(playerID string) string {
	short := playerID
	if len(short) > 5 {
		short = short[:5]
	}
	return fmt.Sprintf("Player %s", short)
}

// EnsureProfile returns the stored profile of id, creating it with the
// starter kit on first contact. Concurrent first visits of one player are
// collapsed into a single creation.
func EnsureProfile(repo ProfileStore, cat *catalog.Catalog, table rewards.Table, deckSize int, id Identity) (*game.Profile, error) {
	if id.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}
	v, err, _ := dedupe.ProfileGroup.Do(dedupe.ProfileKey(id.PlayerID), func() (interface{}, error) {
		p, err := repo.GetProfile(id.PlayerID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return nil, err
		}

		name := id.Name
		if name == "" {
			name = DefaultPlayerName(id.PlayerID)
		}
		p = &game.Profile{
			PlayerID:      id.PlayerID,
			Name:          name,
			AvatarURL:     id.AvatarURL,
			Level:         1,
			XPToNextLevel: table.XPToNextLevel(1),
			Rating:        table.InitialRating,
			Coins:         StarterCoins,
		}
		collection, deck := StarterKit(cat, deckSize)
		if err := repo.CreateProfile(p, collection, &game.Deck{Name: StarterDeckName, CardIDs: deck}); err != nil {
			return nil, err
		}
		logging.Info("profile created", logging.Fields{
			constants.LogFieldPlayerID: id.PlayerID,
			constants.LogFieldCount:    len(collection),
		})
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Profile), nil
}
