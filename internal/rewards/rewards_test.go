package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func TestHumanWinCrossesThreshold(t *testing.T) {
	tbl := DefaultTable()
	res := Calculate(tbl, Outcome{Won: true, OpponentType: game.OpponentHuman},
		Progress{Level: 1, XP: 80, Rating: 1000}, catalog.Default().Has)

	assert.Equal(t, 30, res.XPGained)
	assert.Equal(t, 110, res.XP)
	assert.Equal(t, 15, res.RatingChange)
	assert.Equal(t, 1015, res.Rating)
	assert.Equal(t, 2, res.Level)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 250, res.XPToNextLevel)
	require.Len(t, res.Rewards, 1)
	assert.Equal(t, game.RewardCoins, res.Rewards[0].Type)
	assert.Equal(t, 100, res.Rewards[0].Amount)
}

func TestXPConstants(t *testing.T) {
	tbl := DefaultTable()
	cases := []struct {
		name   string
		out    Outcome
		xp     int
		rating int
	}{
		{"human win", Outcome{Won: true, OpponentType: game.OpponentHuman}, 30, 15},
		{"bot win", Outcome{Won: true, OpponentType: game.OpponentBot}, 15, 0},
		{"human loss", Outcome{OpponentType: game.OpponentHuman}, 10, -10},
		{"bot loss", Outcome{OpponentType: game.OpponentBot}, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Calculate(tbl, tc.out, Progress{Level: 1, Rating: 500}, nil)
			if res.XPGained != tc.xp {
				t.Fatalf("xp gained = %d, want %d", res.XPGained, tc.xp)
			}
			if res.RatingChange != tc.rating {
				t.Fatalf("rating change = %d, want %d", res.RatingChange, tc.rating)
			}
			assert.Equal(t, 500+tc.rating, res.Rating)
		})
	}
}

func TestRatingClampsAtZero(t *testing.T) {
	res := Calculate(DefaultTable(), Outcome{OpponentType: game.OpponentHuman}, Progress{Level: 1, Rating: 4}, nil)
	assert.Equal(t, 0, res.Rating)
	assert.Equal(t, -10, res.RatingChange)
}

func TestMultipleLevelUps(t *testing.T) {
	res := Calculate(DefaultTable(), Outcome{Won: true}, Progress{Level: 1, XP: 990, Rating: 1000}, nil)
	assert.Equal(t, 5, res.Level)
	assert.Equal(t, 1750, res.XPToNextLevel)

	coins, _, _, cards := Totals(res.Rewards)
	assert.Equal(t, 100+200+150, coins)
	assert.Equal(t, []string{"c001", "r001"}, cards)
}

func TestLevelCapped(t *testing.T) {
	res := Calculate(DefaultTable(), Outcome{Won: true}, Progress{Level: 10, XP: 9000, Rating: 1000}, nil)
	assert.Equal(t, 10, res.Level)
	assert.Equal(t, 0, res.XPToNextLevel)
	assert.False(t, res.LeveledUp)
	assert.Empty(t, res.Rewards)
	assert.NotNil(t, res.Rewards)
}

func TestUnknownCardRewardDropped(t *testing.T) {
	tbl := DefaultTable()
	tbl.LevelRewards[2] = []game.Reward{
		{Type: game.RewardSpecificCard, CardID: "x404"},
		{Type: game.RewardDust, Amount: 20},
	}
	res := Calculate(tbl, Outcome{Won: true}, Progress{Level: 1, XP: 95}, catalog.Default().Has)
	require.Len(t, res.Rewards, 1)
	assert.Equal(t, game.RewardDust, res.Rewards[0].Type)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultTable().Validate())

	bad := DefaultTable()
	bad.Thresholds = map[int]int{1: 0, 2: 100, 3: 100}
	assert.ErrorIs(t, bad.Validate(), ErrThresholdOrder)

	gap := DefaultTable()
	gap.Thresholds = map[int]int{1: 0, 3: 100}
	assert.ErrorIs(t, gap.Validate(), ErrThresholdGap)
}
