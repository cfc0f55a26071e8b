package game

type RewardType string

const (
	RewardCoins        RewardType = "KRENDI_COINS"
	RewardCardPack     RewardType = "CARD_PACK"
	RewardSpecificCard RewardType = "SPECIFIC_CARD"
	RewardDust         RewardType = "KRENDI_DUST"
)

// Reward is one granted item. Amount applies to coins, dust and packs;
// CardID to specific-card rewards.
type Reward struct {
	Type           RewardType `json:"type" yaml:"type"`
	Amount         int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	CardID         string     `json:"card_id,omitempty" yaml:"card_id,omitempty"`
	DescriptionKey string     `json:"description_key,omitempty" yaml:"description_key,omitempty"`
}
