package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

var eightCards = []string{"c001", "c001", "c002", "c003", "c004", "c005", "r001", "l001"}

func TestBuildPlayerState(t *testing.T) {
	c := testCatalog(t)
	rng := rand.New(rand.NewSource(3))
	p := BuildPlayerState(c, rng, SeatInfo{ID: "p1", Name: "Alice", Rating: 1000, Level: 2}, eightCards, 3, 30)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 30, p.Health)
	assert.Equal(t, 30, p.MaxHealth)
	assert.Len(t, p.Hand, 3)
	assert.Len(t, p.Deck, 5)
	assert.NotNil(t, p.Board)
	assert.Empty(t, p.Board)
	assert.Zero(t, p.BurnoutDamageCounter)

	var ids []string
	seen := map[string]bool{}
	for _, ci := range append(append([]game.CardInstance{}, p.Hand...), p.Deck...) {
		ids = append(ids, ci.ID)
		assert.False(t, seen[ci.UUID])
		seen[ci.UUID] = true
		assert.False(t, ci.IsPlayed)
	}
	assert.ElementsMatch(t, eightCards, ids)
}

func TestBuildPlayerStateSkipsUnknownCards(t *testing.T) {
	c := testCatalog(t)
	p := BuildPlayerState(c, rand.New(rand.NewSource(1)), SeatInfo{ID: "p1"}, []string{"c001", "nope", "c002"}, 4, 30)
	assert.Len(t, p.Hand, 2)
	assert.Empty(t, p.Deck)
	assert.NotNil(t, p.Deck)
}

func TestBuildPlayerStateIsDeterministicForSeed(t *testing.T) {
	c := testCatalog(t)
	order := func(seed int64) []string {
		p := BuildPlayerState(c, rand.New(rand.NewSource(seed)), SeatInfo{ID: "p1"}, eightCards, 3, 30)
		var out []string
		for _, ci := range append(p.Hand, p.Deck...) {
			out = append(out, ci.ID)
		}
		return out
	}
	assert.Equal(t, order(42), order(42))
}

func TestNewMatch(t *testing.T) {
	c := testCatalog(t)
	e := New(c, DefaultRules())
	g, err := e.NewMatch(rand.New(rand.NewSource(9)), MatchSetup{
		First:        SeatSetup{SeatInfo: SeatInfo{ID: "p1", Name: "Alice"}, DeckIDs: eightCards},
		Second:       SeatSetup{SeatInfo: SeatInfo{ID: "bot_1", Name: "KrendiBot"}, DeckIDs: eightCards},
		OpponentType: game.OpponentBot,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, g.MatchID)
	assert.Equal(t, "p1", g.CurrentTurn)
	assert.Equal(t, 1, g.TurnNumber)
	assert.False(t, g.IsGameOver)
	assert.Len(t, g.Player.Hand, 3)
	assert.Len(t, g.Player.Deck, 5)
	assert.Len(t, g.Opponent.Hand, 4)
	assert.Len(t, g.Opponent.Deck, 4)
	assert.Equal(t, 1, g.Player.Mana)
	assert.Equal(t, 1, g.Player.MaxMana)
	assert.Zero(t, g.Opponent.Mana)
	assert.Zero(t, g.Opponent.MaxMana)
	assert.True(t, g.IsBotSeat("bot_1"))
	require.Len(t, g.Log, 1)
	assert.Equal(t, "Game started! Alice vs KrendiBot. Alice goes first.", g.Log[0])
}

func TestNewMatchDefaults(t *testing.T) {
	e := New(testCatalog(t), DefaultRules())
	g, err := e.NewMatch(rand.New(rand.NewSource(1)), MatchSetup{
		MatchID: "fixed",
		First:   SeatSetup{SeatInfo: SeatInfo{ID: "a"}},
		Second:  SeatSetup{SeatInfo: SeatInfo{ID: "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", g.MatchID)
	assert.Equal(t, game.OpponentHuman, g.OpponentType)

	_, err = e.NewMatch(rand.New(rand.NewSource(1)), MatchSetup{
		First:  SeatSetup{SeatInfo: SeatInfo{ID: "a"}},
		Second: SeatSetup{SeatInfo: SeatInfo{ID: "a"}},
	})
	assert.ErrorIs(t, err, ErrSameSeat)
}
