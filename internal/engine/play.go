package engine

import (
	"fmt"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func (tc *turnContext) playCard(a Action) error {
	self := tc.g.Seat(a.SeatID)
	idx := self.HandIndex(a.CardUUID)
	if idx < 0 {
		return ErrCardNotInHand
	}
	card := self.Hand[idx]
	if card.Cost > self.Mana {
		return fmt.Errorf("%w: %s costs %d, %d available", ErrNotEnoughMana, card.Name, card.Cost, self.Mana)
	}
	if card.Minion && len(self.Board) >= tc.rules.MaxBoardSize {
		return ErrBoardFull
	}

	self.Mana -= card.Cost
	self.Hand = removeAt(self.Hand, idx)

	if !card.Minion {
		// non-minion cards have no resolution yet; they are spent
		tc.emitf(Event{Type: EventSpellCast, SeatID: self.ID, CardUUID: card.UUID, Amount: card.Cost},
			"%s casts %s.", self.Name, card.Name)
		tc.checkGameOver()
		return nil
	}

	card.IsPlayed = true
	card.CurrentHealth = card.MaxHealth
	card.HasAttacked = !card.HasAbility(game.AbilityCharge)
	pos := len(self.Board)
	if a.Position != nil {
		pos = *a.Position
	}
	self.Board = insertAt(self.Board, pos, card)
	tc.emitf(Event{Type: EventCardPlayed, SeatID: self.ID, CardUUID: card.UUID, Amount: card.Cost},
		"%s plays %s.", self.Name, card.Name)

	tc.resolveBattlecries(self, card)
	tc.checkGameOver()
	return nil
}

// resolveBattlecries dispatches every battlecry effect of a freshly played
// minion. Battlecries without an effect are descriptive only.
func (tc *turnContext) resolveBattlecries(self *game.PlayerState, played game.CardInstance) {
	for _, ab := range played.Abilities {
		if ab.Type != game.AbilityBattlecry || ab.Effect == nil {
			continue
		}
		eff := ab.Effect
		switch eff.Kind {
		case game.EffectDraw:
			n := eff.Amount
			if n < 1 {
				n = 1
			}
			tc.emitf(Event{Type: EventBattlecry, SeatID: self.ID, CardUUID: played.UUID, Amount: n},
				"%s's battlecry: draw %d.", played.Name, n)
			for i := 0; i < n; i++ {
				tc.draw(self)
			}
		case game.EffectSummon:
			tc.summon(self, played, eff.CardID)
		case game.EffectBuffFriendly:
			buffed := 0
			for i := range self.Board {
				m := &self.Board[i]
				if m.UUID == played.UUID {
					continue
				}
				m.Attack += eff.Attack
				m.MaxHealth += eff.Health
				m.CurrentHealth += eff.Health
				buffed++
			}
			tc.emitf(Event{Type: EventBattlecry, SeatID: self.ID, CardUUID: played.UUID, Amount: buffed},
				"%s's battlecry gives %d other minions +%d/+%d.", played.Name, buffed, eff.Attack, eff.Health)
		}
	}
}

// summon puts a fresh copy of cardID on the board next to source. The
// summoned minion follows normal summoning sickness.
func (tc *turnContext) summon(self *game.PlayerState, source game.CardInstance, cardID string) {
	if len(self.Board) >= tc.rules.MaxBoardSize {
		tc.emitf(Event{Type: EventBattlecry, SeatID: self.ID, CardUUID: source.UUID},
			"%s's battlecry fizzles: the board is full.", source.Name)
		return
	}
	p, ok := tc.e.cat.Get(cardID)
	if !ok || !p.IsMinion() {
		return
	}
	m := catalog.FromPrototype(p)
	m.IsPlayed = true
	m.HasAttacked = !m.HasAbility(game.AbilityCharge)
	pos := self.BoardIndex(source.UUID) + 1
	self.Board = insertAt(self.Board, pos, m)
	tc.emitf(Event{Type: EventMinionSummoned, SeatID: self.ID, CardUUID: m.UUID, TargetUUID: source.UUID},
		"%s summons %s.", source.Name, m.Name)
}
