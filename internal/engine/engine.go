// Package engine is the battle state machine. Apply takes a match snapshot
// and an action and returns a new snapshot; the input is never mutated, so
// callers may keep and publish earlier snapshots freely.
package engine

import (
	"errors"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

// Rejections. State is left untouched whenever one of these is returned.
var (
	ErrNoMatch         = errors.New("no match state")
	ErrGameOver        = errors.New("game is over")
	ErrUnknownSeat     = errors.New("seat is not part of this match")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrUnknownAction   = errors.New("unknown action type")
	ErrCardNotInHand   = errors.New("card is not in hand")
	ErrNotEnoughMana   = errors.New("not enough mana")
	ErrBoardFull       = errors.New("board is full")
	ErrInvalidAttacker = errors.New("attacker cannot attack")
	ErrInvalidTarget   = errors.New("invalid attack target")
	ErrTauntBlocks     = errors.New("a minion with taunt must be attacked first")
	ErrSameSeat        = errors.New("both seats have the same id")
)

// Rules are the match limits. DefaultRules matches the live game.
type Rules struct {
	StartingHealth int
	MaxMana        int
	MaxHandSize    int
	MaxBoardSize   int
	FirstHandSize  int
	SecondHandSize int
	EnforceTaunt   bool
}

func DefaultRules() Rules {
	return Rules{
		StartingHealth: 30,
		MaxMana:        10,
		MaxHandSize:    10,
		MaxBoardSize:   7,
		FirstHandSize:  3,
		SecondHandSize: 4,
	}
}

type ActionType string

const (
	ActionPlayCard ActionType = "PLAY_CARD"
	ActionAttack   ActionType = "ATTACK"
	ActionEndTurn  ActionType = "END_TURN"
)

// Action is a request from SeatID. Position is optional for PLAY_CARD;
// nil or out of range places the minion at the right end of the board.
type Action struct {
	Type         ActionType `json:"type"`
	SeatID       string     `json:"seat_id"`
	CardUUID     string     `json:"card_uuid,omitempty"`
	Position     *int       `json:"position,omitempty"`
	AttackerUUID string     `json:"attacker_uuid,omitempty"`
	TargetUUID   string     `json:"target_uuid,omitempty"`
}

func PlayCard(seatID, cardUUID string, position *int) Action {
	return Action{Type: ActionPlayCard, SeatID: seatID, CardUUID: cardUUID, Position: position}
}

func Attack(seatID, attackerUUID, targetUUID string) Action {
	return Action{Type: ActionAttack, SeatID: seatID, AttackerUUID: attackerUUID, TargetUUID: targetUUID}
}

func EndTurn(seatID string) Action {
	return Action{Type: ActionEndTurn, SeatID: seatID}
}

type EventType string

const (
	EventCardPlayed     EventType = "card_played"
	EventSpellCast      EventType = "spell_cast"
	EventBattlecry      EventType = "battlecry"
	EventMinionSummoned EventType = "minion_summoned"
	EventAttack         EventType = "attack"
	EventHeroDamaged    EventType = "hero_damaged"
	EventMinionDied     EventType = "minion_died"
	EventCardDrawn      EventType = "card_drawn"
	EventDrawSkipped    EventType = "draw_skipped"
	EventBurnout        EventType = "burnout"
	EventTurnEnded      EventType = "turn_ended"
	EventTurnStarted    EventType = "turn_started"
	EventConceded       EventType = "conceded"
	EventGameOver       EventType = "game_over"
)

// Event describes one step of an accepted action. Message is the line
// appended to the match log.
type Event struct {
	Type       EventType `json:"type"`
	SeatID     string    `json:"seat_id,omitempty"`
	CardUUID   string    `json:"card_uuid,omitempty"`
	TargetUUID string    `json:"target_uuid,omitempty"`
	Amount     int       `json:"amount,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Engine holds the rules and the catalog; it carries no match state and is
// safe to share between matches.
type Engine struct {
	cat   *catalog.Catalog
	rules Rules
}

func New(cat *catalog.Catalog, rules Rules) *Engine {
	return &Engine{cat: cat, rules: rules}
}

func (e *Engine) Rules() Rules { return e.rules }

func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Apply validates a and applies it to a copy of g.
func (e *Engine) Apply(g *game.GameState, a Action) (*game.GameState, []Event, error) {
	if g == nil {
		return nil, nil, ErrNoMatch
	}
	if g.IsGameOver {
		return g, nil, ErrGameOver
	}
	if g.Seat(a.SeatID) == nil {
		return g, nil, ErrUnknownSeat
	}
	if g.CurrentTurn != a.SeatID {
		return g, nil, ErrNotYourTurn
	}

	next := g.Clone()
	tc := newTurnContext(e, next)
	var err error
	switch a.Type {
	case ActionPlayCard:
		err = tc.playCard(a)
	case ActionAttack:
		err = tc.attack(a)
	case ActionEndTurn:
		err = tc.endTurn(a)
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		return g, nil, err
	}
	return next, tc.events, nil
}

// Concede ends the match in favor of the seat facing seatID. It may be
// called out of turn.
func (e *Engine) Concede(g *game.GameState, seatID string) (*game.GameState, []Event, error) {
	if g == nil {
		return nil, nil, ErrNoMatch
	}
	if g.IsGameOver {
		return g, nil, ErrGameOver
	}
	if g.Seat(seatID) == nil {
		return g, nil, ErrUnknownSeat
	}
	next := g.Clone()
	tc := newTurnContext(e, next)
	loser := next.Seat(seatID)
	winner := next.OtherSeat(seatID)
	tc.emitf(Event{Type: EventConceded, SeatID: loser.ID}, "%s left the match.", loser.Name)
	tc.finish(winner, loser, "%s wins by forfeit.", winner.Name)
	return next, tc.events, nil
}
