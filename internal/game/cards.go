package game

// Rarity of a card prototype.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Valid reports whether r is one of the known rarities.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// AbilityType tags an entry of a card's ability list. Resolution code
// switches on it; there is no per-ability type hierarchy.
type AbilityType string

const (
	AbilityTaunt        AbilityType = "TAUNT"
	AbilityDivineShield AbilityType = "DIVINE_SHIELD"
	AbilityCharge       AbilityType = "CHARGE"
	AbilityBattlecry    AbilityType = "BATTLECRY"
	AbilityDeathrattle  AbilityType = "DEATHRATTLE"
	AbilityLifesteal    AbilityType = "LIFESTEAL"
	AbilityPoison       AbilityType = "POISON"
	AbilityStealth      AbilityType = "STEALTH"
	AbilitySilence      AbilityType = "SILENCE"
	AbilityAirdrop      AbilityType = "AIRDROP"
	AbilityHODL         AbilityType = "HODL"
)

// Valid reports whether t is a declared ability type.
func (t AbilityType) Valid() bool {
	switch t {
	case AbilityTaunt, AbilityDivineShield, AbilityCharge, AbilityBattlecry,
		AbilityDeathrattle, AbilityLifesteal, AbilityPoison, AbilityStealth,
		AbilitySilence, AbilityAirdrop, AbilityHODL:
		return true
	}
	return false
}

// EffectKind selects what a battlecry does when it resolves.
type EffectKind string

const (
	EffectDraw         EffectKind = "draw"
	EffectSummon       EffectKind = "summon"
	EffectBuffFriendly EffectKind = "buff_friendly"
)

// Effect is the machine-readable part of an ability. Only battlecries
// carry one today.
type Effect struct {
	Kind   EffectKind `json:"kind" yaml:"kind"`
	Amount int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	CardID string     `json:"card_id,omitempty" yaml:"card_id,omitempty"`
	Attack int        `json:"attack,omitempty" yaml:"attack,omitempty"`
	Health int        `json:"health,omitempty" yaml:"health,omitempty"`
}

type Ability struct {
	Type        AbilityType `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	Effect      *Effect     `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// CardPrototype is the immutable catalog definition of a card. A nil
// Attack marks a non-minion card.
type CardPrototype struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        int       `json:"cost"`
	Rarity      Rarity    `json:"rarity"`
	Attack      *int      `json:"attack,omitempty"`
	Health      *int      `json:"health,omitempty"`
	Abilities   []Ability `json:"abilities"`
	CardType    string    `json:"card_type"`
	ImageURL    string    `json:"image_url"`
}

func (p CardPrototype) IsMinion() bool { return p.Attack != nil }

func (p CardPrototype) HasAbility(t AbilityType) bool {
	for _, a := range p.Abilities {
		if a.Type == t {
			return true
		}
	}
	return false
}

// CardInstance is a prototype copy living in a deck, hand or board.
type CardInstance struct {
	UUID          string    `json:"uuid"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Cost          int       `json:"cost"`
	Rarity        Rarity    `json:"rarity"`
	Minion        bool      `json:"is_minion"`
	Attack        int       `json:"attack"`
	CurrentHealth int       `json:"current_health"`
	MaxHealth     int       `json:"max_health"`
	Abilities     []Ability `json:"abilities"`
	CardType      string    `json:"card_type"`
	ImageURL      string    `json:"image_url"`
	IsPlayed      bool      `json:"is_played"`
	HasAttacked   bool      `json:"has_attacked"`
}

func (c CardInstance) HasAbility(t AbilityType) bool {
	for _, a := range c.Abilities {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Alive reports whether a board minion can still fight.
func (c CardInstance) Alive() bool { return c.CurrentHealth > 0 }

// CanAttack reports whether the minion may declare an attack now.
func (c CardInstance) CanAttack() bool {
	return c.Minion && c.Attack > 0 && !c.HasAttacked && c.CurrentHealth > 0
}
