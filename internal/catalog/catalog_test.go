package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func TestInstantiateKeepsPrototypeFields(t *testing.T) {
	c := Default()
	for _, p := range c.All() {
		ci, err := c.Instantiate(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, ci.ID)
		assert.Equal(t, p.Cost, ci.Cost)
		assert.Equal(t, p.Rarity, ci.Rarity)
		assert.Equal(t, *p.Health, ci.MaxHealth)
		assert.Equal(t, ci.MaxHealth, ci.CurrentHealth)
		assert.False(t, ci.IsPlayed)
		assert.False(t, ci.HasAttacked)
		assert.NotEmpty(t, ci.UUID)
	}
}

func TestInstantiateAssignsUniqueIDs(t *testing.T) {
	c := Default()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ci, err := c.Instantiate("c001")
		require.NoError(t, err)
		require.False(t, seen[ci.UUID], "duplicate uuid %s", ci.UUID)
		seen[ci.UUID] = true
	}
}

func TestInstantiateUnknown(t *testing.T) {
	_, err := Default().Instantiate("x999")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestInstanceMutationDoesNotLeakIntoCatalog(t *testing.T) {
	c := Default()
	ci, err := c.Instantiate("r004")
	require.NoError(t, err)
	ci.Abilities[0].Description = "changed"
	ci.Attack = 99

	p, ok := c.Get("r004")
	require.True(t, ok)
	assert.Equal(t, "card_r004_battlecry_desc", p.Abilities[0].Description)
	assert.Equal(t, 2, *p.Attack)
}

func TestNonMinionInstance(t *testing.T) {
	c, err := New([]game.CardPrototype{{ID: "s001", Name: "Pump It", Cost: 1, Rarity: game.RarityCommon}})
	require.NoError(t, err)
	ci, err := c.Instantiate("s001")
	require.NoError(t, err)
	assert.False(t, ci.Minion)
	assert.Zero(t, ci.MaxHealth)
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	one := 1
	cases := map[string][]game.CardPrototype{
		"duplicate":      {{ID: "a", Rarity: game.RarityCommon}, {ID: "A", Rarity: game.RarityCommon}},
		"rarity":         {{ID: "a", Rarity: "MYTHIC"}},
		"no health":      {{ID: "a", Rarity: game.RarityCommon, Attack: &one}},
		"ability":        {{ID: "a", Rarity: game.RarityCommon, Abilities: []game.Ability{{Type: "WINDFURY"}}}},
		"summon missing": {{ID: "a", Rarity: game.RarityCommon, Abilities: []game.Ability{{Type: game.AbilityBattlecry, Effect: &game.Effect{Kind: game.EffectSummon, CardID: "zz"}}}}},
	}
	for name, cards := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(cards)
			assert.Error(t, err)
		})
	}
}

func TestRandomDeckRespectsCopyLimits(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		deck := c.RandomDeck(rng, 8, DefaultCopyLimits)
		require.Len(t, deck, 8)
		require.NoError(t, c.ValidateDeck(deck, 8, DefaultCopyLimits))
	}
}

func TestRandomDeckTopsUpFromSmallPool(t *testing.T) {
	one, two := 1, 2
	c, err := New([]game.CardPrototype{
		{ID: "a", Rarity: game.RarityCommon, Attack: &one, Health: &two},
		{ID: "b", Rarity: game.RarityLegendary, Attack: &one, Health: &two},
	})
	require.NoError(t, err)
	deck := c.RandomDeck(rand.New(rand.NewSource(1)), 8, DefaultCopyLimits)
	assert.ElementsMatch(t, []string{"a", "a", "b"}, deck)
}

func TestValidateDeck(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.ValidateDeck([]string{"c001"}, 8, DefaultCopyLimits), ErrDeckSize)
	assert.ErrorIs(t, c.ValidateDeck([]string{"c001", "c001", "c001", "c002", "c003", "c004", "c005", "c006"}, 8, DefaultCopyLimits), ErrTooManyCopies)
	assert.ErrorIs(t, c.ValidateDeck([]string{"l001", "l001", "c001", "c002", "c003", "c004", "c005", "c006"}, 8, DefaultCopyLimits), ErrTooManyCopies)
	assert.ErrorIs(t, c.ValidateDeck([]string{"zzz", "c001", "c001", "c002", "c003", "c004", "c005", "c006"}, 8, DefaultCopyLimits), ErrUnknownCard)
	assert.NoError(t, c.ValidateDeck([]string{"c001", "c001", "c002", "c003", "c004", "c005", "c006", "l001"}, 8, DefaultCopyLimits))
}

func TestMergeOverridesByID(t *testing.T) {
	base := DefaultCards()
	five := 5
	merged := Merge(base, []game.CardPrototype{
		{ID: "c001", Name: "Veteran Trader", Cost: 2, Rarity: game.RarityCommon, Attack: &five, Health: &five},
		{ID: "x001", Name: "Extra", Cost: 1, Rarity: game.RarityCommon},
	})
	assert.Len(t, merged, len(base)+1)
	c, err := New(merged)
	require.NoError(t, err)
	p, _ := c.Get("c001")
	assert.Equal(t, "Veteran Trader", p.Name)
	assert.True(t, c.Has("x001"))
}
