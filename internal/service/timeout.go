package service

import (
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

// HandleTurnTimeout ends the turn of a human seat that has been idle for at
// least timeout. Finished matches and bot turns are left alone.
// Returns true when a turn was ended.
func HandleTurnTimeout(s *Session, now time.Time, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.state
	if g.IsGameOver || !s.isHuman(g.CurrentTurn) {
		return false, nil
	}
	if now.Sub(s.turnStarted) < timeout {
		return false, nil
	}

	seat := g.CurrentTurn
	logging.Info("turn timed out; ending turn", logging.Fields{
		constants.LogFieldMatchID: g.MatchID,
		constants.LogFieldSeatID:  seat,
		constants.LogFieldTurn:    g.TurnNumber,
	})
	next, events, err := s.engine.Apply(g, engine.EndTurn(seat))
	if err != nil {
		return false, err
	}
	s.commitLocked(next, events)
	s.advanceLocked()
	return true, nil
}

// ExpireTurns runs HandleTurnTimeout over every session and returns how many
// turns were ended.
func (m *Manager) ExpireTurns(now time.Time) int {
	n := 0
	for _, s := range m.snapshot() {
		ended, err := HandleTurnTimeout(s, now, m.opts.TurnTimeout)
		if err != nil {
			logging.Error("turn timeout failed", err, logging.Fields{constants.LogFieldMatchID: s.ID()})
			continue
		}
		if ended {
			n++
		}
	}
	return n
}
