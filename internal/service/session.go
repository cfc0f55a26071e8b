package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/bot"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrPlayerNotInMatch = errors.New("player not in match")
	ErrNoHumanSeat      = errors.New("match needs at least one human seat")
)

type UpdateType string

const (
	UpdateGameState UpdateType = "game_state_update"
	UpdateGameOver  UpdateType = "game_over"
	UpdateXP        UpdateType = "xp_update"
)

// Update is one message pushed to match subscribers. Game-state updates
// carry the snapshot after an accepted step; an xp update carries the
// rewards of one seat and is sent once.
type Update struct {
	Type     UpdateType      `json:"type"`
	State    *game.GameState `json:"state,omitempty"`
	Events   []engine.Event  `json:"events,omitempty"`
	PlayerID string          `json:"player_id,omitempty"`
	Progress *rewards.Result `json:"progress,omitempty"`
}

const subscriberBuffer = 64

// gameOverFunc settles a finished match and returns the updates to publish.
type gameOverFunc func(g *game.GameState, humanSeats []string) []Update

// Session is one live match. Seats not listed as human are played by the
// bot policy. Snapshots handed out by a Session are never mutated.
type Session struct {
	mu sync.Mutex

	id     string
	engine *engine.Engine
	state  *game.GameState
	humans []string
	rng    *rand.Rand

	botDelay time.Duration
	botTimer *time.Timer
	now      func() time.Time

	turnSeat    string
	turnStarted time.Time
	finishedAt  time.Time

	rewardsApplied bool
	onGameOver     gameOverFunc

	subs    map[int]chan Update
	nextSub int
	closed  bool
}

type sessionOptions struct {
	botDelay   time.Duration
	now        func() time.Time
	onGameOver gameOverFunc
}

func newSession(e *engine.Engine, g *game.GameState, humans []string, rng *rand.Rand, opts sessionOptions) (*Session, error) {
	if len(humans) == 0 {
		return nil, ErrNoHumanSeat
	}
	for _, id := range humans {
		if g.Seat(id) == nil {
			return nil, ErrPlayerNotInMatch
		}
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		id:         g.MatchID,
		engine:     e,
		state:      g,
		humans:     append([]string(nil), humans...),
		rng:        rng,
		botDelay:   opts.botDelay,
		now:        now,
		onGameOver: opts.onGameOver,
		subs:       make(map[int]chan Update),
	}
	s.mu.Lock()
	s.advanceLocked()
	s.mu.Unlock()
	return s, nil
}

func (s *Session) ID() string { return s.id }

// State returns the current snapshot.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HasPlayer reports whether playerID controls a seat of this match.
func (s *Session) HasPlayer(playerID string) bool {
	for _, id := range s.humans {
		if id == playerID {
			return true
		}
	}
	return false
}

func (s *Session) Finished() (bool, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsGameOver, s.finishedAt
}

// Subscribe registers a listener. The current snapshot is delivered first.
// The returned func unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- Update{Type: UpdateGameState, State: s.state}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Apply submits an action for playerID's seat.
func (s *Session) Apply(playerID string, a engine.Action) (*game.GameState, []engine.Event, error) {
	if !s.HasPlayer(playerID) {
		return nil, nil, ErrPlayerNotInMatch
	}
	a.SeatID = playerID

	s.mu.Lock()
	defer s.mu.Unlock()
	next, events, err := s.engine.Apply(s.state, a)
	if err != nil {
		return s.state, nil, err
	}
	s.commitLocked(next, events)
	s.advanceLocked()
	return s.state, events, nil
}

// Concede forfeits the match for playerID.
func (s *Session) Concede(playerID string) (*game.GameState, error) {
	if !s.HasPlayer(playerID) {
		return nil, ErrPlayerNotInMatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, events, err := s.engine.Concede(s.state, playerID)
	if err != nil {
		return s.state, err
	}
	s.commitLocked(next, events)
	s.advanceLocked()
	return s.state, nil
}

// Close stops a pending bot turn and closes every subscriber channel.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.botTimer != nil {
		s.botTimer.Stop()
		s.botTimer = nil
	}
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.closed = true
}

func (s *Session) commitLocked(next *game.GameState, events []engine.Event) {
	s.state = next
	s.publishLocked(Update{Type: UpdateGameState, State: next, Events: events})
}

func (s *Session) publishLocked(u Update) {
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			logging.Warn("subscriber too slow, dropping update", logging.Fields{
				constants.LogFieldMatchID: s.state.MatchID,
				constants.LogFieldAction:  string(u.Type),
			})
		}
	}
}

func (s *Session) isHuman(seatID string) bool {
	return s.HasPlayer(seatID)
}

// advanceLocked runs after every accepted step: it settles a finished match,
// restarts the turn clock on a turn change and hands control to the bot.
func (s *Session) advanceLocked() {
	if s.state.IsGameOver {
		s.finishLocked()
		return
	}
	if s.state.CurrentTurn != s.turnSeat {
		s.turnSeat = s.state.CurrentTurn
		s.turnStarted = s.now()
	}
	if s.isHuman(s.state.CurrentTurn) {
		return
	}
	if s.botDelay <= 0 {
		s.runBotLocked()
		return
	}
	if s.botTimer != nil {
		return
	}
	seat := s.state.CurrentTurn
	s.botTimer = time.AfterFunc(s.botDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.botTimer = nil
		if s.closed || s.state.IsGameOver || s.state.CurrentTurn != seat {
			return
		}
		s.runBotLocked()
	})
}

func (s *Session) runBotLocked() {
	seat := s.state.CurrentTurn
	_, err := bot.TakeTurn(s.engine, s.state, seat, s.rng, func(g *game.GameState, events []engine.Event) {
		s.commitLocked(g, events)
	})
	if err != nil {
		logging.Error("bot turn failed", err, logging.Fields{
			constants.LogFieldMatchID: s.state.MatchID,
			constants.LogFieldSeatID:  seat,
		})
		return
	}
	s.advanceLocked()
}

func (s *Session) finishLocked() {
	if s.rewardsApplied {
		return
	}
	s.rewardsApplied = true
	s.finishedAt = s.now()
	logging.Info("match finished", logging.Fields{
		constants.LogFieldMatchID: s.state.MatchID,
		constants.LogFieldWinner:  s.state.Winner,
		constants.LogFieldTurn:    s.state.TurnNumber,
	})
	s.publishLocked(Update{Type: UpdateGameOver, State: s.state})
	if s.onGameOver == nil {
		return
	}
	for _, u := range s.onGameOver(s.state, s.humans) {
		s.publishLocked(u)
	}
}
