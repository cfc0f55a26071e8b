package engine

import (
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func (tc *turnContext) attack(a Action) error {
	self := tc.g.Seat(a.SeatID)
	opp := tc.g.OtherSeat(a.SeatID)

	ai := self.BoardIndex(a.AttackerUUID)
	if ai < 0 || !self.Board[ai].CanAttack() {
		return ErrInvalidAttacker
	}
	taunts := opp.TauntMinions()

	if a.TargetUUID == tc.g.HeroTargetFor(self.ID) {
		if tc.rules.EnforceTaunt && len(taunts) > 0 {
			return ErrTauntBlocks
		}
		attacker := &self.Board[ai]
		opp.Health -= attacker.Attack
		attacker.HasAttacked = true
		tc.emitf(Event{Type: EventAttack, SeatID: self.ID, CardUUID: attacker.UUID, TargetUUID: a.TargetUUID, Amount: attacker.Attack},
			"%s attacks %s for %d damage.", attacker.Name, opp.Name, attacker.Attack)
		tc.emit(Event{Type: EventHeroDamaged, SeatID: opp.ID, Amount: attacker.Attack})
		tc.checkGameOver()
		return nil
	}

	ti := opp.BoardIndex(a.TargetUUID)
	if ti < 0 || !opp.Board[ti].Alive() {
		return ErrInvalidTarget
	}
	if tc.rules.EnforceTaunt && len(taunts) > 0 && !opp.Board[ti].HasAbility(game.AbilityTaunt) {
		return ErrTauntBlocks
	}

	attacker := &self.Board[ai]
	target := &opp.Board[ti]
	// both sides take damage computed from pre-combat values
	toTarget := attacker.Attack
	toAttacker := 0
	if target.Attack > 0 {
		toAttacker = target.Attack
	}
	target.CurrentHealth -= toTarget
	attacker.CurrentHealth -= toAttacker
	attacker.HasAttacked = true
	tc.emitf(Event{Type: EventAttack, SeatID: self.ID, CardUUID: attacker.UUID, TargetUUID: target.UUID, Amount: toTarget},
		"%s attacks %s. %s takes %d, %s takes %d.", attacker.Name, target.Name, target.Name, toTarget, attacker.Name, toAttacker)

	tc.removeDead(opp)
	tc.removeDead(self)
	tc.checkGameOver()
	return nil
}

// removeDead drops every minion at or below zero health from the board.
func (tc *turnContext) removeDead(p *game.PlayerState) {
	alive := p.Board[:0:0]
	for _, m := range p.Board {
		if m.Alive() {
			alive = append(alive, m)
			continue
		}
		tc.emitf(Event{Type: EventMinionDied, SeatID: p.ID, CardUUID: m.UUID}, "%s's %s dies.", p.Name, m.Name)
	}
	p.Board = alive
}
