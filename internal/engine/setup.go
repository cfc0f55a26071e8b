package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

// SeatInfo is the identity shown for a seat.
type SeatInfo struct {
	ID        string
	Name      string
	AvatarURL string
	Rating    int
	Level     int
}

type SeatSetup struct {
	SeatInfo
	DeckIDs []string
}

// MatchSetup describes a match to create. First takes the opening turn.
type MatchSetup struct {
	MatchID      string
	First        SeatSetup
	Second       SeatSetup
	OpponentType game.OpponentType
}

// BuildPlayerState instantiates the deck, shuffles it and draws the opening
// hand. Unknown card ids are skipped; any deck size is accepted.
func BuildPlayerState(cat *catalog.Catalog, rng *rand.Rand, seat SeatInfo, deckIDs []string, handSize, health int) game.PlayerState {
	deck := make([]game.CardInstance, 0, len(deckIDs))
	for _, id := range deckIDs {
		ci, err := cat.Instantiate(id)
		if err != nil {
			logging.Warn("skipping unknown card in deck", logging.Fields{constants.LogFieldSeatID: seat.ID, constants.LogFieldCardID: id})
			continue
		}
		deck = append(deck, ci)
	}
	shuffle(rng, deck)

	n := handSize
	if n > len(deck) {
		n = len(deck)
	}
	if n < 0 {
		n = 0
	}
	hand := make([]game.CardInstance, n)
	copy(hand, deck[:n])

	return game.PlayerState{
		ID:        seat.ID,
		Name:      seat.Name,
		AvatarURL: seat.AvatarURL,
		Rating:    seat.Rating,
		Level:     seat.Level,
		Health:    health,
		MaxHealth: health,
		Hand:      hand,
		Deck:      append([]game.CardInstance{}, deck[n:]...),
		Board:     []game.CardInstance{},
	}
}

// shuffle is an in-place Fisher-Yates shuffle driven by rng.
func shuffle(rng *rand.Rand, cards []game.CardInstance) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// NewMatch builds both seats and grants the first seat its opening mana.
func (e *Engine) NewMatch(rng *rand.Rand, setup MatchSetup) (*game.GameState, error) {
	if setup.First.ID == setup.Second.ID {
		return nil, ErrSameSeat
	}
	id := setup.MatchID
	if id == "" {
		id = uuid.NewString()
	}
	opponentType := setup.OpponentType
	if opponentType == "" {
		opponentType = game.OpponentHuman
	}

	first := BuildPlayerState(e.cat, rng, setup.First.SeatInfo, setup.First.DeckIDs, e.rules.FirstHandSize, e.rules.StartingHealth)
	second := BuildPlayerState(e.cat, rng, setup.Second.SeatInfo, setup.Second.DeckIDs, e.rules.SecondHandSize, e.rules.StartingHealth)
	first.Mana, first.MaxMana = 1, 1

	return &game.GameState{
		MatchID:      id,
		Player:       first,
		Opponent:     second,
		CurrentTurn:  first.ID,
		TurnNumber:   1,
		Log:          []string{fmt.Sprintf("Game started! %s vs %s. %s goes first.", first.Name, second.Name, first.Name)},
		OpponentType: opponentType,
	}, nil
}
