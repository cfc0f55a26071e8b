// Package bot drives the bot seat of a match: one card, every ready
// attack, then end of turn.
package bot

import (
	"math/rand"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

// Emit receives the snapshot and events after every accepted sub-step.
type Emit func(g *game.GameState, events []engine.Event)

// TakeTurn plays the bot's whole turn and returns the final snapshot. A
// finished match is returned as is.
func TakeTurn(e *engine.Engine, g *game.GameState, seatID string, rng *rand.Rand, emit Emit) (*game.GameState, error) {
	if g == nil {
		return nil, engine.ErrNoMatch
	}
	if g.IsGameOver {
		return g, nil
	}
	if g.Seat(seatID) == nil {
		return g, engine.ErrUnknownSeat
	}
	if g.CurrentTurn != seatID {
		return g, engine.ErrNotYourTurn
	}

	step := func(a engine.Action) error {
		next, events, err := e.Apply(g, a)
		if err != nil {
			return err
		}
		g = next
		if emit != nil {
			emit(g, events)
		}
		return nil
	}

	if card, ok := ChooseCard(g.Seat(seatID), e.Rules().MaxBoardSize); ok {
		if err := step(engine.PlayCard(seatID, card.UUID, nil)); err != nil {
			logging.Warn("bot card play rejected", logging.Fields{
				constants.LogFieldMatchID: g.MatchID,
				constants.LogFieldCardID:  card.ID,
				constants.LogFieldReason:  err.Error(),
			})
		}
	}

	tried := make(map[string]bool)
	for !g.IsGameOver {
		attacker, ok := nextAttacker(g.Seat(seatID), tried)
		if !ok {
			break
		}
		tried[attacker.UUID] = true
		target := ChooseTarget(g, seatID, rng)
		if err := step(engine.Attack(seatID, attacker.UUID, target)); err != nil {
			logging.Warn("bot attack rejected", logging.Fields{
				constants.LogFieldMatchID: g.MatchID,
				constants.LogFieldCardID:  attacker.ID,
				constants.LogFieldReason:  err.Error(),
			})
		}
	}
	if g.IsGameOver {
		return g, nil
	}
	if err := step(engine.EndTurn(seatID)); err != nil {
		return g, err
	}
	return g, nil
}

// ChooseCard picks the most expensive affordable card. Ties keep hand
// order; minions are skipped when the board is full.
func ChooseCard(self *game.PlayerState, maxBoard int) (game.CardInstance, bool) {
	best := -1
	for i, c := range self.Hand {
		if c.Cost > self.Mana {
			continue
		}
		if c.Minion && len(self.Board) >= maxBoard {
			continue
		}
		if best < 0 || c.Cost > self.Hand[best].Cost {
			best = i
		}
	}
	if best < 0 {
		return game.CardInstance{}, false
	}
	return self.Hand[best], true
}

func nextAttacker(self *game.PlayerState, tried map[string]bool) (game.CardInstance, bool) {
	for _, m := range self.Board {
		if m.CanAttack() && !tried[m.UUID] {
			return m, true
		}
	}
	return game.CardInstance{}, false
}

// ChooseTarget returns a random living Taunt minion, else a random living
// minion, else the enemy hero sentinel.
func ChooseTarget(g *game.GameState, seatID string, rng *rand.Rand) string {
	opp := g.OtherSeat(seatID)
	if taunts := opp.TauntMinions(); len(taunts) > 0 {
		return taunts[rng.Intn(len(taunts))].UUID
	}
	alive := make([]game.CardInstance, 0, len(opp.Board))
	for _, m := range opp.Board {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	if len(alive) > 0 {
		return alive[rng.Intn(len(alive))].UUID
	}
	return g.HeroTargetFor(seatID)
}
