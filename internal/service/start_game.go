package service

import (
	"context"
	"errors"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/matchmaking"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

// StartBotMatch seats playerID with their active deck against the bot.
func (m *Manager) StartBotMatch(playerID string) (*Session, error) {
	req, err := m.request(playerID)
	if err != nil {
		return nil, err
	}
	g, err := m.mm.NewBotMatch(req)
	if err != nil {
		return nil, err
	}
	return m.register(g, playerID)
}

// FindMatch waits for the matchmaking stub and seats playerID against the
// opponent it produces. The opponent's turns are played by the bot policy.
func (m *Manager) FindMatch(ctx context.Context, playerID string) (*Session, error) {
	req, err := m.request(playerID)
	if err != nil {
		return nil, err
	}
	g, err := m.mm.FindMatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.register(g, playerID)
}

func (m *Manager) request(playerID string) (matchmaking.Request, error) {
	p, err := m.repo.GetProfile(playerID)
	if err != nil {
		return matchmaking.Request{}, err
	}
	req := matchmaking.Request{Seat: engine.SeatInfo{
		ID:        p.PlayerID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Rating:    p.Rating,
		Level:     p.Level,
	}}
	deck, err := m.repo.GetActiveDeck(playerID)
	switch {
	case err == nil:
		req.DeckIDs = deck.CardIDs
	case errors.Is(err, storage.ErrDeckNotFound):
		logging.Warn("no active deck", logging.Fields{constants.LogFieldPlayerID: playerID})
	default:
		return matchmaking.Request{}, err
	}
	return req, nil
}
