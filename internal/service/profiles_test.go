package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
)

func TestStarterKit(t *testing.T) {
	cat := catalog.Default()
	collection, deck := StarterKit(cat, 8)

	commons := cat.IDsByRarity("COMMON")
	assert.Len(t, collection, 2*len(commons))
	assert.Equal(t, []string{"c001", "c001", "c002", "c002", "c003", "c003", "c004", "c004"}, deck)
	assert.NoError(t, cat.ValidateDeck(deck, 8, catalog.DefaultCopyLimits))
}

func TestDefaultPlayerName(t *testing.T) {
	if got := DefaultPlayerName("123456789"); got != "Player 12345" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := DefaultPlayerName("77"); got != "Player 77" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestEnsureProfileCreatesOnce(t *testing.T) {
	store := newMockStore()
	cat := catalog.Default()

	p, err := EnsureProfile(store, cat, rewards.DefaultTable(), 8, Identity{PlayerID: "987654321"})
	require.NoError(t, err)
	assert.Equal(t, "Player 98765", p.Name)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.XPToNextLevel)
	assert.Equal(t, 1000, p.Rating)
	assert.Equal(t, StarterCoins, p.Coins)

	deck, err := store.GetActiveDeck("987654321")
	require.NoError(t, err)
	assert.Equal(t, StarterDeckName, deck.Name)
	assert.Len(t, deck.CardIDs, 8)

	again, err := EnsureProfile(store, cat, rewards.DefaultTable(), 8, Identity{PlayerID: "987654321", Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Player 98765", again.Name, "existing profiles are returned as stored")
	assert.Equal(t, 1, store.creates)
}

func TestEnsureProfileConcurrentFirstVisit(t *testing.T) {
	store := newMockStore()
	cat := catalog.Default()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := EnsureProfile(store, cat, rewards.DefaultTable(), 8, Identity{PlayerID: "55", Name: "Bob"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.creates)
}

func TestEnsureProfileRequiresID(t *testing.T) {
	_, err := EnsureProfile(newMockStore(), catalog.Default(), rewards.DefaultTable(), 8, Identity{})
	assert.ErrorIs(t, err, ErrEmptyPlayerID)
}
