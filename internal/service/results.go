package service

import (
	"errors"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

// settle computes and stores the rewards of every human seat with a stored
// profile. It runs once per match.
func (m *Manager) settle(g *game.GameState, humanSeats []string) []Update {
	var updates []Update
	for _, seatID := range humanSeats {
		res, err := m.settleSeat(g, seatID)
		if err != nil {
			if errors.Is(err, storage.ErrProfileNotFound) || errors.Is(err, storage.ErrResultAlreadySeen) {
				logging.Debug("skipping rewards", logging.Fields{
					constants.LogFieldMatchID:  g.MatchID,
					constants.LogFieldPlayerID: seatID,
					constants.LogFieldReason:   err.Error(),
				})
				continue
			}
			logging.Error("failed to apply match result", err, logging.Fields{
				constants.LogFieldMatchID:  g.MatchID,
				constants.LogFieldPlayerID: seatID,
			})
			continue
		}
		updates = append(updates, Update{Type: UpdateXP, PlayerID: seatID, Progress: res})
	}
	return updates
}

func (m *Manager) settleSeat(g *game.GameState, seatID string) (*rewards.Result, error) {
	p, err := m.repo.GetProfile(seatID)
	if err != nil {
		return nil, err
	}
	won := g.Winner == seatID
	res := rewards.Calculate(m.table,
		rewards.Outcome{Won: won, OpponentType: g.OpponentType},
		rewards.Progress{Level: p.Level, XP: p.XP, Rating: p.Rating},
		m.engine.Catalog().Has)

	rec := &game.MatchRecord{
		MatchID:      g.MatchID,
		OpponentType: g.OpponentType,
		Won:          won,
		Turns:        g.TurnNumber,
		XPGained:     res.XPGained,
		RatingChange: res.RatingChange,
		Rewards:      res.Rewards,
		FinishedAt:   m.opts.Now(),
	}
	if opp := g.OtherSeat(seatID); opp != nil {
		rec.OpponentID = opp.ID
		rec.OpponentName = opp.Name
	}
	progress := game.ProfileProgress{
		Level:         res.Level,
		XP:            res.XP,
		XPToNextLevel: res.XPToNextLevel,
		Rating:        res.Rating,
		Won:           won,
		OpponentType:  g.OpponentType,
		Rewards:       res.Rewards,
	}
	if err := m.repo.ApplyMatchResult(seatID, progress, rec); err != nil {
		return nil, err
	}
	logging.Info("match result applied", logging.Fields{
		constants.LogFieldMatchID:  g.MatchID,
		constants.LogFieldPlayerID: seatID,
		constants.LogFieldWinner:   g.Winner,
	})
	return &res, nil
}
