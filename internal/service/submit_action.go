package service

import (
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

// SubmitAction applies a player's action to a match.
// Returns the snapshot after the action (and after any bot turn it
// triggered when bot turns run inline) and the events of the action itself.
// A rejected action leaves the match untouched and returns the engine error.
func (m *Manager) SubmitAction(matchID, playerID string, a engine.Action) (*game.GameState, []engine.Event, error) {
	s, err := m.Get(matchID)
	if err != nil {
		return nil, nil, err
	}
	g, events, err := s.Apply(playerID, a)
	if err != nil {
		logging.Debug("action rejected", logging.Fields{
			constants.LogFieldMatchID:  matchID,
			constants.LogFieldPlayerID: playerID,
			constants.LogFieldAction:   string(a.Type),
			constants.LogFieldReason:   err.Error(),
		})
		return g, nil, err
	}
	return g, events, nil
}

// Concede forfeits matchID for playerID.
func (m *Manager) Concede(matchID, playerID string) (*game.GameState, error) {
	s, err := m.Get(matchID)
	if err != nil {
		return nil, err
	}
	return s.Concede(playerID)
}
