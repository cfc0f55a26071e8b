package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/matchmaking"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
)

// ProfileStore is the subset of storage the profile bootstrap needs.
type ProfileStore interface {
	GetProfile(playerID string) (*game.Profile, error)
	CreateProfile(p *game.Profile, starterCards []string, starterDeck *game.Deck) error
}

// MatchStore is the subset of storage used to start and settle matches.
type MatchStore interface {
	ProfileStore
	GetActiveDeck(playerID string) (*game.Deck, error)
	ApplyMatchResult(playerID string, progress game.ProfileProgress, rec *game.MatchRecord) error
}

type Options struct {
	BotDelay time.Duration
	// TurnTimeout ends a human turn that has been idle this long. Zero
	// disables the check.
	TurnTimeout time.Duration
	// Retention keeps finished sessions around for late readers.
	Retention time.Duration
	Now       func() time.Time
}

// Manager owns every live Session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	engine *engine.Engine
	mm     *matchmaking.Stub
	repo   MatchStore
	table  rewards.Table

	rngMu sync.Mutex
	rng   *rand.Rand

	opts Options
}

func NewManager(e *engine.Engine, mm *matchmaking.Stub, repo MatchStore, table rewards.Table, rng *rand.Rand, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Retention <= 0 {
		opts.Retention = 10 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		engine:   e,
		mm:       mm,
		repo:     repo,
		table:    table,
		rng:      rng,
		opts:     opts,
	}
}

func (m *Manager) Engine() *engine.Engine { return m.engine }

// Get returns the session of a match.
func (m *Manager) Get(matchID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return s, nil
}

// Count reports the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) register(g *game.GameState, humans ...string) (*Session, error) {
	m.rngMu.Lock()
	seed := m.rng.Int63()
	m.rngMu.Unlock()

	s, err := newSession(m.engine, g, humans, rand.New(rand.NewSource(seed)), sessionOptions{
		botDelay:   m.opts.BotDelay,
		now:        m.opts.Now,
		onGameOver: m.settle,
	})
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[g.MatchID] = s
	m.mu.Unlock()
	logging.Info("match registered", logging.Fields{
		constants.LogFieldMatchID:  g.MatchID,
		constants.LogFieldPlayerID: humans[0],
	})
	return s, nil
}

func (m *Manager) snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Reap drops sessions that finished more than Retention ago and returns
// how many were removed.
func (m *Manager) Reap(now time.Time) int {
	var stale []*Session
	for _, s := range m.snapshot() {
		over, at := s.Finished()
		if over && now.Sub(at) >= m.opts.Retention {
			stale = append(stale, s)
		}
	}
	if len(stale) == 0 {
		return 0
	}
	m.mu.Lock()
	for _, s := range stale {
		delete(m.sessions, s.ID())
	}
	m.mu.Unlock()
	for _, s := range stale {
		s.Close()
	}
	logging.Debug("reaped finished matches", logging.Fields{constants.LogFieldCount: len(stale)})
	return len(stale)
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
