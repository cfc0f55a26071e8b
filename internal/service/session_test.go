package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/game"
	"github.com/SASASDAa/tgsg-sub000/internal/matchmaking"
	"github.com/SASASDAa/tgsg-sub000/internal/rewards"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

type mockStore struct {
	mu       sync.Mutex
	profiles map[string]*game.Profile
	decks    map[string]*game.Deck
	results  map[string]game.ProfileProgress
	records  []*game.MatchRecord
	creates  int
}

func newMockStore() *mockStore {
	return &mockStore{
		profiles: map[string]*game.Profile{},
		decks:    map[string]*game.Deck{},
		results:  map[string]game.ProfileProgress{},
	}
}

func (m *mockStore) GetProfile(id string) (*game.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) CreateProfile(p *game.Profile, starter []string, deck *game.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.profiles[p.PlayerID] = p
	if deck != nil {
		deck.IsActive = true
		m.decks[p.PlayerID] = deck
	}
	return nil
}

func (m *mockStore) GetActiveDeck(id string) (*game.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[id]
	if !ok {
		return nil, storage.ErrDeckNotFound
	}
	return d, nil
}

func (m *mockStore) ApplyMatchResult(id string, progress game.ProfileProgress, rec *game.MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := rec.MatchID + "/" + id
	if _, seen := m.results[key]; seen {
		return storage.ErrResultAlreadySeen
	}
	m.results[key] = progress
	rec.PlayerID = id
	m.records = append(m.records, rec)
	return nil
}

func (m *mockStore) recordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

var starter = []string{"c001", "c001", "c002", "c002", "c003", "c003", "c004", "c004"}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T, opts Options) (*Manager, *mockStore) {
	t.Helper()
	e := engine.New(catalog.Default(), engine.DefaultRules())
	mm := matchmaking.NewStub(e, rand.New(rand.NewSource(7)))
	mm.Delay = 0
	store := newMockStore()
	store.profiles["42"] = &game.Profile{PlayerID: "42", Name: "Alice", Level: 1, Rating: 1000, XPToNextLevel: 100}
	store.decks["42"] = &game.Deck{Name: "My First Deck", CardIDs: starter, IsActive: true}
	m := NewManager(e, mm, store, rewards.DefaultTable(), rand.New(rand.NewSource(11)), opts)
	t.Cleanup(m.Shutdown)
	return m, store
}

func TestStartBotMatchPlaysBotTurnInline(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	g := s.State()
	assert.Equal(t, game.OpponentBot, g.OpponentType)
	assert.Equal(t, "42", g.CurrentTurn)
	assert.True(t, strings.HasPrefix(g.MatchID, "bot_match_"))
	assert.True(t, g.IsBotSeat(g.Opponent.ID))

	got, err := m.Get(g.MatchID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	after, events, err := m.SubmitAction(g.MatchID, "42", engine.EndTurn("42"))
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	assert.Equal(t, "42", after.CurrentTurn, "bot turn runs inline and hands the turn back")
	assert.Equal(t, 2, after.TurnNumber)
	assert.False(t, after.IsGameOver)
}

func TestSubmitActionRejections(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)
	before := s.State()

	_, _, err = m.SubmitAction("nope", "42", engine.EndTurn("42"))
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, _, err = m.SubmitAction(before.MatchID, "intruder", engine.EndTurn("intruder"))
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)

	g, events, err := m.SubmitAction(before.MatchID, "42", engine.Attack("42", "ghost", game.OpponentHeroTargetID))
	assert.ErrorIs(t, err, engine.ErrInvalidAttacker)
	assert.Nil(t, events)
	assert.Same(t, before, g)
	assert.Same(t, before, s.State())
}

func TestSubmitActionForcesCallerSeat(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)
	bot := s.State().Opponent.ID

	// the seat in the action is ignored; the caller always acts as themself
	after, _, err := m.SubmitAction(s.ID(), "42", engine.EndTurn(bot))
	require.NoError(t, err)
	assert.Equal(t, 2, after.TurnNumber)
}

func TestConcedeSettlesOnce(t *testing.T) {
	m, store := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()
	first := <-updates
	assert.Equal(t, UpdateGameState, first.Type)

	g, err := m.Concede(s.ID(), "42")
	require.NoError(t, err)
	assert.True(t, g.IsGameOver)
	assert.Equal(t, g.Opponent.ID, g.Winner)

	var types []UpdateType
	var xp *Update
	for i := 0; i < 3; i++ {
		u := <-updates
		types = append(types, u.Type)
		if u.Type == UpdateXP {
			uu := u
			xp = &uu
		}
	}
	assert.Equal(t, []UpdateType{UpdateGameState, UpdateGameOver, UpdateXP}, types)
	require.NotNil(t, xp)
	assert.Equal(t, "42", xp.PlayerID)
	assert.Equal(t, 5, xp.Progress.XPGained)
	assert.Zero(t, xp.Progress.RatingChange)

	_, err = m.Concede(s.ID(), "42")
	assert.ErrorIs(t, err, engine.ErrGameOver)
	_, _, err = m.SubmitAction(s.ID(), "42", engine.EndTurn("42"))
	assert.ErrorIs(t, err, engine.ErrGameOver)
	assert.Equal(t, 1, store.recordCount())

	rec := store.records[0]
	assert.Equal(t, s.ID(), rec.MatchID)
	assert.Equal(t, g.Opponent.ID, rec.OpponentID)
	assert.False(t, rec.Won)
	assert.Equal(t, game.OpponentBot, rec.OpponentType)
}

func TestSettleSkipsMissingProfile(t *testing.T) {
	m, store := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	store.mu.Lock()
	delete(store.profiles, "42")
	store.mu.Unlock()

	_, err = m.Concede(s.ID(), "42")
	require.NoError(t, err)
	assert.Zero(t, store.recordCount())
}

func TestFindMatchHumanOpponent(t *testing.T) {
	m, store := newTestManager(t, Options{})
	s, err := m.FindMatch(context.Background(), "42")
	require.NoError(t, err)

	g := s.State()
	assert.Equal(t, game.OpponentHuman, g.OpponentType)
	assert.True(t, strings.HasPrefix(g.Opponent.ID, "human_opp_"))
	assert.True(t, strings.HasPrefix(g.MatchID, "pvp_match_"))

	// the manufactured opponent is driven locally
	after, _, err := m.SubmitAction(g.MatchID, "42", engine.EndTurn("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", after.CurrentTurn)

	_, err = m.Concede(g.MatchID, "42")
	require.NoError(t, err)
	require.Equal(t, 1, store.recordCount())
	progress := store.results[g.MatchID+"/42"]
	assert.Equal(t, 10, progress.XP)
	assert.Equal(t, 990, progress.Rating)
}

func TestFindMatchCancelled(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	m.mm.Delay = time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.FindMatch(ctx, "42")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, m.Count())
}

func TestStartMatchUnknownProfile(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	_, err := m.StartBotMatch("ghost")
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)
}

func TestStartMatchWithoutActiveDeckDealsRandomDeck(t *testing.T) {
	m, store := newTestManager(t, Options{})
	delete(store.decks, "42")

	s, err := m.StartBotMatch("42")
	require.NoError(t, err)
	g := s.State()
	assert.Equal(t, 8, len(g.Player.Hand)+len(g.Player.Deck))
}

func TestBotTurnWithDelay(t *testing.T) {
	m, _ := newTestManager(t, Options{BotDelay: 10 * time.Millisecond})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	after, _, err := m.SubmitAction(s.ID(), "42", engine.EndTurn("42"))
	require.NoError(t, err)
	assert.Equal(t, after.Opponent.ID, after.CurrentTurn)

	require.Eventually(t, func() bool {
		return s.State().CurrentTurn == "42"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, s.State().TurnNumber)
}

func TestHandleTurnTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m, _ := newTestManager(t, Options{TurnTimeout: 45 * time.Second, Now: clock.Now})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	ended, err := HandleTurnTimeout(s, clock.Now().Add(10*time.Second), 45*time.Second)
	require.NoError(t, err)
	assert.False(t, ended)

	ended, err = HandleTurnTimeout(s, clock.Now().Add(time.Minute), 0)
	require.NoError(t, err)
	assert.False(t, ended, "zero timeout disables the check")

	clock.Advance(46 * time.Second)
	assert.Equal(t, 1, m.ExpireTurns(clock.Now()))
	g := s.State()
	assert.Equal(t, "42", g.CurrentTurn)
	assert.Equal(t, 2, g.TurnNumber)

	// the clock restarted with the new turn
	assert.Zero(t, m.ExpireTurns(clock.Now().Add(time.Second)))
}

func TestHandleTurnTimeoutIgnoresFinishedMatch(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m, _ := newTestManager(t, Options{Now: clock.Now})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)
	_, err = s.Concede("42")
	require.NoError(t, err)

	ended, err := HandleTurnTimeout(s, clock.Now().Add(time.Hour), time.Second)
	require.NoError(t, err)
	assert.False(t, ended)
}

func TestReapDropsFinishedSessions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m, _ := newTestManager(t, Options{Now: clock.Now, Retention: time.Minute})
	live, err := m.StartBotMatch("42")
	require.NoError(t, err)
	done, err := m.StartBotMatch("42")
	require.NoError(t, err)
	_, err = done.Concede("42")
	require.NoError(t, err)

	assert.Zero(t, m.Reap(clock.Now().Add(30*time.Second)))
	assert.Equal(t, 1, m.Reap(clock.Now().Add(time.Minute)))

	_, err = m.Get(done.ID())
	assert.ErrorIs(t, err, ErrMatchNotFound)
	_, err = m.Get(live.ID())
	assert.NoError(t, err)

	updates, _ := done.Subscribe()
	_, open := <-updates
	assert.False(t, open, "subscribing to a closed session yields a closed channel")
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)

	updates, unsubscribe := s.Subscribe()
	<-updates
	unsubscribe()
	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestNewSessionNeedsHumanSeat(t *testing.T) {
	e := engine.New(catalog.Default(), engine.DefaultRules())
	g := &game.GameState{MatchID: "m", Player: game.PlayerState{ID: "a"}, Opponent: game.PlayerState{ID: "b"}, CurrentTurn: "a"}

	_, err := newSession(e, g, nil, rand.New(rand.NewSource(1)), sessionOptions{})
	assert.ErrorIs(t, err, ErrNoHumanSeat)
	_, err = newSession(e, g, []string{"c"}, rand.New(rand.NewSource(1)), sessionOptions{})
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)
}

func TestSessionIDStableWhileBotPlays(t *testing.T) {
	m, _ := newTestManager(t, Options{BotDelay: time.Millisecond})
	s, err := m.StartBotMatch("42")
	require.NoError(t, err)
	id := s.ID()

	_, _, err = m.SubmitAction(id, "42", engine.EndTurn("42"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		// the bot timer swaps the state concurrently
		assert.Equal(t, id, s.ID())
		return s.State().CurrentTurn == "42"
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, id, s.State().MatchID)
}
