// Package rewards turns a finished match into xp, rating and level-up
// rewards for one seat. It does not touch storage.
package rewards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

// Table holds the progression constants. The zero value grants nothing;
// use DefaultTable or load one from config.
type Table struct {
	XPWin         int                   `yaml:"xp_win"`
	XPBotWin      int                   `yaml:"xp_bot_win"`
	XPLoss        int                   `yaml:"xp_loss"`
	XPBotLoss     int                   `yaml:"xp_bot_loss"`
	RatingWin     int                   `yaml:"rating_win"`
	RatingLoss    int                   `yaml:"rating_loss"`
	InitialRating int                   `yaml:"initial_rating"`
	Thresholds    map[int]int           `yaml:"level_thresholds"`
	LevelRewards  map[int][]game.Reward `yaml:"level_rewards"`
}

func DefaultTable() Table {
	return Table{
		XPWin:         30,
		XPBotWin:      15,
		XPLoss:        10,
		XPBotLoss:     5,
		RatingWin:     15,
		RatingLoss:    -10,
		InitialRating: 1000,
		Thresholds: map[int]int{
			1: 0, 2: 100, 3: 250, 4: 500, 5: 1000,
			6: 1750, 7: 2800, 8: 4200, 9: 6000, 10: 8500,
		},
		LevelRewards: map[int][]game.Reward{
			2: {{Type: game.RewardCoins, Amount: 100, DescriptionKey: "reward_level_2_coins"}},
			3: {{Type: game.RewardSpecificCard, CardID: "c001", DescriptionKey: "reward_level_3_card_c001"}},
			4: {{Type: game.RewardCoins, Amount: 200, DescriptionKey: "reward_level_4_coins"}},
			5: {
				{Type: game.RewardSpecificCard, CardID: "r001", DescriptionKey: "reward_level_5_card_r001"},
				{Type: game.RewardCoins, Amount: 150, DescriptionKey: "reward_level_5_coins_extra"},
			},
		},
	}
}

var (
	ErrThresholdOrder = errors.New("level thresholds must increase with level")
	ErrThresholdGap   = errors.New("level thresholds must be contiguous from level 1")
)

// Validate checks that thresholds start at level 1 and strictly increase.
func (t Table) Validate() error {
	levels := make([]int, 0, len(t.Thresholds))
	for lvl := range t.Thresholds {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	for i, lvl := range levels {
		if lvl != i+1 {
			return fmt.Errorf("%w: missing level %d", ErrThresholdGap, i+1)
		}
		if i > 0 && t.Thresholds[lvl] <= t.Thresholds[levels[i-1]] {
			return fmt.Errorf("%w: level %d", ErrThresholdOrder, lvl)
		}
	}
	return nil
}

// XPToNextLevel is the absolute xp needed for level+1, or 0 at the cap.
func (t Table) XPToNextLevel(level int) int {
	return t.Thresholds[level+1]
}

// Outcome is the result of one match from one seat's point of view.
type Outcome struct {
	Won          bool
	OpponentType game.OpponentType
}

type Progress struct {
	Level  int
	XP     int
	Rating int
}

type Result struct {
	Level         int           `json:"level"`
	XP            int           `json:"xp"`
	Rating        int           `json:"rating"`
	XPToNextLevel int           `json:"xp_to_next_level"`
	XPGained      int           `json:"xp_gained"`
	RatingChange  int           `json:"rating_change"`
	LeveledUp     bool          `json:"leveled_up"`
	Rewards       []game.Reward `json:"rewards"`
}

// Calculate applies one match outcome to p. Specific-card rewards whose
// card is not known are dropped; knownCard may be nil to keep them all.
func Calculate(t Table, o Outcome, p Progress, knownCard func(id string) bool) Result {
	bot := o.OpponentType == game.OpponentBot
	res := Result{Rewards: []game.Reward{}}

	switch {
	case o.Won && bot:
		res.XPGained = t.XPBotWin
	case o.Won:
		res.XPGained = t.XPWin
	case bot:
		res.XPGained = t.XPBotLoss
	default:
		res.XPGained = t.XPLoss
	}
	if !bot {
		if o.Won {
			res.RatingChange = t.RatingWin
		} else {
			res.RatingChange = t.RatingLoss
		}
	}

	level := p.Level
	if level < 1 {
		level = 1
	}
	res.XP = p.XP + res.XPGained
	res.Rating = p.Rating + res.RatingChange
	if res.Rating < 0 {
		res.Rating = 0
	}

	for {
		next, ok := t.Thresholds[level+1]
		if !ok || res.XP < next {
			break
		}
		level++
		res.LeveledUp = true
		for _, r := range t.LevelRewards[level] {
			if r.Type == game.RewardSpecificCard && knownCard != nil && !knownCard(r.CardID) {
				continue
			}
			res.Rewards = append(res.Rewards, r)
		}
	}
	res.Level = level
	res.XPToNextLevel = t.XPToNextLevel(level)
	return res
}

// Totals sums the currency rewards and lists the granted card ids.
func Totals(rs []game.Reward) (coins, dust, packs int, cards []string) {
	for _, r := range rs {
		switch r.Type {
		case game.RewardCoins:
			coins += r.Amount
		case game.RewardDust:
			dust += r.Amount
		case game.RewardCardPack:
			packs += r.Amount
		case game.RewardSpecificCard:
			cards = append(cards, r.CardID)
		}
	}
	return coins, dust, packs, cards
}
