package engine

import (
	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

func (tc *turnContext) endTurn(a Action) error {
	outgoing := tc.g.Seat(a.SeatID)
	incoming := tc.g.OtherSeat(a.SeatID)
	tc.emitf(Event{Type: EventTurnEnded, SeatID: outgoing.ID}, "%s ends the turn.", outgoing.Name)

	for i := range incoming.Board {
		incoming.Board[i].HasAttacked = false
	}
	incoming.MaxMana++
	if incoming.MaxMana > tc.rules.MaxMana {
		incoming.MaxMana = tc.rules.MaxMana
	}
	incoming.Mana = incoming.MaxMana
	tc.draw(incoming)

	tc.g.CurrentTurn = incoming.ID
	if incoming.ID == tc.g.Player.ID {
		tc.g.TurnNumber++
	}
	tc.emitf(Event{Type: EventTurnStarted, SeatID: incoming.ID, Amount: tc.g.TurnNumber},
		"Turn %d: %s's turn (%d mana).", tc.g.TurnNumber, incoming.Name, incoming.Mana)
	tc.checkGameOver()
	return nil
}

// draw moves the top card of the deck into the hand. An empty deck deals
// burnout damage that grows by one each time; a full hand leaves the card
// in the deck.
func (tc *turnContext) draw(p *game.PlayerState) {
	if len(p.Deck) == 0 {
		p.BurnoutDamageCounter++
		p.Health -= p.BurnoutDamageCounter
		tc.emitf(Event{Type: EventBurnout, SeatID: p.ID, Amount: p.BurnoutDamageCounter},
			"%s's deck is empty! Burnout deals %d damage.", p.Name, p.BurnoutDamageCounter)
		return
	}
	if len(p.Hand) >= tc.rules.MaxHandSize {
		tc.emitf(Event{Type: EventDrawSkipped, SeatID: p.ID}, "%s's hand is full.", p.Name)
		return
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Hand = append(p.Hand, c)
	tc.emitf(Event{Type: EventCardDrawn, SeatID: p.ID, CardUUID: c.UUID}, "%s draws a card.", p.Name)
}
