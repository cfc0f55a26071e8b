// Package matchmaking manufactures opponents. There is no queue: a request
// waits out a fixed latency and gets a synthetic opponent near its rating.
package matchmaking

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

const (
	DefaultDelay     = 3 * time.Second
	DefaultDeckSize  = 8
	ratingSpread     = 150
	botRatingFloor   = 800
	botRatingSpread  = 50
	defaultRating    = 1000
	opponentAvatar   = "https://picsum.photos/seed/pvpopp_found/80/80"
	botAvatarPattern = "https://picsum.photos/seed/%s/80/80"
)

// Request is the requester's identity and chosen deck.
type Request struct {
	Seat    engine.SeatInfo
	DeckIDs []string
}

// Stub builds matches against manufactured opponents. It is safe for
// concurrent use.
type Stub struct {
	engine *engine.Engine

	mu  sync.Mutex
	rng *rand.Rand

	Delay      time.Duration
	DeckSize   int
	CopyLimits catalog.CopyLimits
}

func NewStub(e *engine.Engine, rng *rand.Rand) *Stub {
	return &Stub{
		engine:     e,
		rng:        rng,
		Delay:      DefaultDelay,
		DeckSize:   DefaultDeckSize,
		CopyLimits: catalog.DefaultCopyLimits,
	}
}

// FindMatch waits Delay and returns a match against a human-typed opponent
// rated within 150 points of the requester. Cancelling ctx while waiting
// discards the request and returns ctx.Err().
func (s *Stub) FindMatch(ctx context.Context, req Request) (*game.GameState, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			logging.Info("matchmaking cancelled", logging.Fields{constants.LogFieldPlayerID: req.Seat.ID})
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	rating := req.Seat.Rating
	if rating <= 0 {
		rating = defaultRating
	}
	oppRating := rating + s.rng.Intn(2*ratingSpread+1) - ratingSpread
	if oppRating < 0 {
		oppRating = 0
	}
	opp := engine.SeatSetup{
		SeatInfo: engine.SeatInfo{
			ID:        "human_opp_" + shortID(4),
			Name:      fmt.Sprintf("Opponent %d", oppRating),
			AvatarURL: opponentAvatar,
			Rating:    oppRating,
			Level:     s.nearbyLevel(req.Seat.Level),
		},
		DeckIDs: s.engine.Catalog().RandomDeck(s.rng, s.DeckSize, s.CopyLimits),
	}
	g, err := s.build(req, opp, game.OpponentHuman, "pvp_match_"+shortID(8))
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	logging.Info("match found", logging.Fields{
		constants.LogFieldMatchID:  g.MatchID,
		constants.LogFieldPlayerID: req.Seat.ID,
	})
	return g, nil
}

// NewBotMatch builds a match against the bot right away.
func (s *Stub) NewBotMatch(req Request) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rating := req.Seat.Rating
	if rating <= 0 {
		rating = defaultRating
	}
	botRating := rating + s.rng.Intn(2*botRatingSpread) - botRatingSpread
	if botRating < botRatingFloor {
		botRating = botRatingFloor
	}
	id := "bot_" + shortID(4)
	bot := engine.SeatSetup{
		SeatInfo: engine.SeatInfo{
			ID:        id,
			Name:      fmt.Sprintf("KrendiBot %04d", s.rng.Intn(10000)),
			AvatarURL: fmt.Sprintf(botAvatarPattern, id),
			Rating:    botRating,
			Level:     s.nearbyLevel(req.Seat.Level),
		},
		DeckIDs: s.engine.Catalog().RandomDeck(s.rng, s.DeckSize, s.CopyLimits),
	}
	return s.build(req, bot, game.OpponentBot, "bot_match_"+shortID(8))
}

// build seats the requester first. Callers hold s.mu.
func (s *Stub) build(req Request, opp engine.SeatSetup, typ game.OpponentType, matchID string) (*game.GameState, error) {
	deck := req.DeckIDs
	if len(deck) != s.DeckSize {
		logging.Warn("requester deck unusable, dealing a random deck", logging.Fields{
			constants.LogFieldPlayerID: req.Seat.ID,
			constants.LogFieldCount:    len(deck),
		})
		deck = s.engine.Catalog().RandomDeck(s.rng, s.DeckSize, s.CopyLimits)
	}
	return s.engine.NewMatch(s.rng, engine.MatchSetup{
		MatchID:      matchID,
		First:        engine.SeatSetup{SeatInfo: req.Seat, DeckIDs: deck},
		Second:       opp,
		OpponentType: typ,
	})
}

func (s *Stub) nearbyLevel(level int) int {
	l := level + s.rng.Intn(2) - 1
	if l < 1 {
		l = 1
	}
	return l
}

func shortID(n int) string {
	id := uuid.NewString()
	return id[:n]
}
