package engine

import (
	"fmt"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

// --- Turn context and helpers ------------------------------------------
type turnContext struct {
	g      *game.GameState
	rules  Rules
	e      *Engine
	events []Event
}

func newTurnContext(e *Engine, g *game.GameState) *turnContext {
	return &turnContext{g: g, rules: e.rules, e: e, events: make([]Event, 0, 8)}
}

// emit records an event and appends its message to the match log.
func (tc *turnContext) emit(ev Event) {
	tc.events = append(tc.events, ev)
	if ev.Message != "" {
		tc.g.Log = append(tc.g.Log, ev.Message)
	}
}

func (tc *turnContext) emitf(ev Event, format string, args ...interface{}) {
	ev.Message = fmt.Sprintf(format, args...)
	tc.emit(ev)
}

// checkGameOver flags the match finished once a hero is dead.
func (tc *turnContext) checkGameOver() {
	if tc.g.IsGameOver {
		return
	}
	var winner, loser *game.PlayerState
	switch {
	case tc.g.Player.Health <= 0:
		winner, loser = &tc.g.Opponent, &tc.g.Player
	case tc.g.Opponent.Health <= 0:
		winner, loser = &tc.g.Player, &tc.g.Opponent
	default:
		return
	}
	tc.finish(winner, loser, "%s has been defeated! %s wins.", loser.Name, winner.Name)
}

func (tc *turnContext) finish(winner, loser *game.PlayerState, format string, args ...interface{}) {
	tc.g.IsGameOver = true
	tc.g.Winner = winner.ID
	tc.emitf(Event{Type: EventGameOver, SeatID: winner.ID, TargetUUID: loser.ID}, format, args...)
}

func removeAt(cards []game.CardInstance, i int) []game.CardInstance {
	out := make([]game.CardInstance, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func insertAt(cards []game.CardInstance, i int, c game.CardInstance) []game.CardInstance {
	if i < 0 || i > len(cards) {
		i = len(cards)
	}
	out := make([]game.CardInstance, 0, len(cards)+1)
	out = append(out, cards[:i]...)
	out = append(out, c)
	return append(out, cards[i:]...)
}
