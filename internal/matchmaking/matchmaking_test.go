package matchmaking

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

var deck = []string{"c001", "c001", "c002", "c003", "c004", "c005", "r001", "l001"}

func newStub(seed int64) *Stub {
	s := NewStub(engine.New(catalog.Default(), engine.DefaultRules()), rand.New(rand.NewSource(seed)))
	s.Delay = 0
	return s
}

func requester(rating int) Request {
	return Request{Seat: engine.SeatInfo{ID: "42", Name: "Alice", Rating: rating, Level: 3}, DeckIDs: deck}
}

func TestFindMatch(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g, err := newStub(seed).FindMatch(context.Background(), requester(1200))
		require.NoError(t, err)

		assert.Equal(t, game.OpponentHuman, g.OpponentType)
		assert.Equal(t, "42", g.Player.ID)
		assert.Equal(t, "42", g.CurrentTurn)
		assert.Equal(t, 1, g.Player.Mana)
		assert.Equal(t, 1, g.Player.MaxMana)
		assert.Len(t, g.Player.Hand, 3)
		assert.Len(t, g.Opponent.Hand, 4)
		assert.True(t, strings.HasPrefix(g.MatchID, "pvp_match_"))
		assert.InDelta(t, 1200, g.Opponent.Rating, 150)
		assert.Contains(t, []int{2, 3}, g.Opponent.Level)
	}
}

func TestFindMatchClampsRating(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g, err := newStub(seed).FindMatch(context.Background(), requester(1))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, g.Opponent.Rating, 0)
	}
}

func TestFindMatchCancelled(t *testing.T) {
	s := newStub(1)
	s.Delay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := s.FindMatch(ctx, requester(1000))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, g)
}

func TestFindMatchWaitsForDelay(t *testing.T) {
	s := newStub(1)
	s.Delay = 20 * time.Millisecond
	start := time.Now()
	_, err := s.FindMatch(context.Background(), requester(1000))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestNewBotMatch(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g, err := newStub(seed).NewBotMatch(requester(700))
		require.NoError(t, err)
		assert.Equal(t, game.OpponentBot, g.OpponentType)
		assert.True(t, g.IsBotSeat(g.Opponent.ID))
		assert.True(t, strings.HasPrefix(g.Opponent.ID, "bot_"))
		assert.True(t, strings.HasPrefix(g.Opponent.Name, "KrendiBot "))
		assert.Equal(t, 800, g.Opponent.Rating)
	}
	g, err := newStub(3).NewBotMatch(requester(1500))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, g.Opponent.Rating, 1450)
	assert.Less(t, g.Opponent.Rating, 1550)
}

func TestShortDeckIsReplaced(t *testing.T) {
	req := requester(1000)
	req.DeckIDs = []string{"c001"}
	g, err := newStub(5).NewBotMatch(req)
	require.NoError(t, err)
	assert.Len(t, g.Player.Hand, 3)
	assert.Len(t, g.Player.Deck, 5)
}
