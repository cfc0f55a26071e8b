package game

import (
	"time"

	"gorm.io/gorm"
)

// Profile stores a Telegram player's progression and currencies.
type Profile struct {
	gorm.Model
	PlayerID      string      `json:"player_id" gorm:"uniqueIndex"`
	Name          string      `json:"name"`
	AvatarURL     string      `json:"avatar_url"`
	Level         int         `json:"level"`
	XP            int         `json:"xp"`
	XPToNextLevel int         `json:"xp_to_next_level"`
	Rating        int         `json:"rating" gorm:"index"`
	Coins         int         `json:"coins"`
	Dust          int         `json:"dust"`
	CardPacks     int         `json:"card_packs"`
	GamesPlayed   int         `json:"games_played"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	BotWins       int         `json:"bot_wins"`
	OwnedCards    []OwnedCard `json:"owned_cards,omitempty"`
}

func (Profile) TableName() string { return "player_profiles" }

// OwnedCard counts copies of a catalog card in a profile's collection.
type OwnedCard struct {
	gorm.Model
	ProfileID uint   `json:"-" gorm:"uniqueIndex:idx_owned_card"`
	CardID    string `json:"card_id" gorm:"uniqueIndex:idx_owned_card"`
	Count     int    `json:"count"`
}

// Deck is a persisted, ordered list of card ids. At most one deck per
// profile is active.
type Deck struct {
	gorm.Model
	ProfileID uint     `json:"-" gorm:"index"`
	Name      string   `json:"name" gorm:"size:32"`
	CardIDs   []string `json:"card_ids" gorm:"serializer:json"`
	Signature string   `json:"-" gorm:"index"`
	IsActive  bool     `json:"is_active"`
}

// MatchRecord is the history row written once per finished match and
// human seat.
type MatchRecord struct {
	gorm.Model
	MatchID      string       `json:"match_id" gorm:"uniqueIndex:idx_match_player"`
	PlayerID     string       `json:"player_id" gorm:"uniqueIndex:idx_match_player;index"`
	OpponentID   string       `json:"opponent_id"`
	OpponentName string       `json:"opponent_name"`
	OpponentType OpponentType `json:"opponent_type"`
	Won          bool         `json:"won"`
	Turns        int          `json:"turns"`
	XPGained     int          `json:"xp_gained"`
	RatingChange int          `json:"rating_change"`
	Rewards      []Reward     `json:"rewards" gorm:"serializer:json"`
	FinishedAt   time.Time    `json:"finished_at"`
}

// ProfileProgress is the outcome of a finished match applied to a profile.
type ProfileProgress struct {
	Level         int
	XP            int
	XPToNextLevel int
	Rating        int
	Won           bool
	OpponentType  OpponentType
	Rewards       []Reward
}
