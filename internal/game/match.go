package game

// Hero target sentinels used as ATTACK targets. OpponentHeroTargetID names
// the second seat's hero (attacked by the first seat), PlayerHeroTargetID
// the first seat's hero.
const (
	OpponentHeroTargetID = "opponent_hero"
	PlayerHeroTargetID   = "player_hero"
)

type OpponentType string

const (
	OpponentHuman OpponentType = "human"
	OpponentBot   OpponentType = "bot"
)

// PlayerState is one seat of a match.
type PlayerState struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	AvatarURL            string         `json:"avatar_url"`
	Rating               int            `json:"rating"`
	Level                int            `json:"level"`
	Health               int            `json:"health"`
	MaxHealth            int            `json:"max_health"`
	Mana                 int            `json:"mana"`
	MaxMana              int            `json:"max_mana"`
	Hand                 []CardInstance `json:"hand"`
	Deck                 []CardInstance `json:"deck"`
	Board                []CardInstance `json:"board"`
	BurnoutDamageCounter int            `json:"burnout_damage_counter"`
}

func (p *PlayerState) HandIndex(uuid string) int {
	for i := range p.Hand {
		if p.Hand[i].UUID == uuid {
			return i
		}
	}
	return -1
}

func (p *PlayerState) BoardIndex(uuid string) int {
	for i := range p.Board {
		if p.Board[i].UUID == uuid {
			return i
		}
	}
	return -1
}

// TauntMinions returns the living board minions carrying Taunt.
func (p *PlayerState) TauntMinions() []CardInstance {
	out := make([]CardInstance, 0, len(p.Board))
	for _, c := range p.Board {
		if c.Alive() && c.HasAbility(AbilityTaunt) {
			out = append(out, c)
		}
	}
	return out
}

func (p PlayerState) clone() PlayerState {
	p.Hand = cloneCards(p.Hand)
	p.Deck = cloneCards(p.Deck)
	p.Board = cloneCards(p.Board)
	return p
}

func cloneCards(in []CardInstance) []CardInstance {
	if in == nil {
		return []CardInstance{}
	}
	out := make([]CardInstance, len(in))
	copy(out, in)
	for i := range out {
		if in[i].Abilities != nil {
			out[i].Abilities = append(make([]Ability, 0, len(in[i].Abilities)), in[i].Abilities...)
		}
	}
	return out
}

// GameState is a full match snapshot. Player always holds the seat that
// started the match.
type GameState struct {
	MatchID      string       `json:"match_id"`
	Player       PlayerState  `json:"player"`
	Opponent     PlayerState  `json:"opponent"`
	CurrentTurn  string       `json:"current_turn"`
	TurnNumber   int          `json:"turn_number"`
	Log          []string     `json:"log"`
	IsGameOver   bool         `json:"is_game_over"`
	Winner       string       `json:"winner,omitempty"`
	OpponentType OpponentType `json:"opponent_type"`
}

// Clone returns a deep copy safe to mutate or hand to another goroutine.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	out := *g
	out.Player = g.Player.clone()
	out.Opponent = g.Opponent.clone()
	out.Log = append([]string(nil), g.Log...)
	return &out
}

// Seat returns the seat with the given id, or nil.
func (g *GameState) Seat(id string) *PlayerState {
	switch id {
	case g.Player.ID:
		return &g.Player
	case g.Opponent.ID:
		return &g.Opponent
	}
	return nil
}

// OtherSeat returns the seat facing the one with the given id.
func (g *GameState) OtherSeat(id string) *PlayerState {
	switch id {
	case g.Player.ID:
		return &g.Opponent
	case g.Opponent.ID:
		return &g.Player
	}
	return nil
}

// HeroTargetFor returns the sentinel a seat uses to attack the enemy hero.
func (g *GameState) HeroTargetFor(seatID string) string {
	if seatID == g.Player.ID {
		return OpponentHeroTargetID
	}
	return PlayerHeroTargetID
}

// IsBotSeat reports whether the seat is driven by the bot policy.
func (g *GameState) IsBotSeat(id string) bool {
	return g.OpponentType == OpponentBot && id == g.Opponent.ID
}
