// Package catalog holds the static card registry and turns prototypes into
// battle instances.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/SASASDAa/tgsg-sub000/internal/game"
)

var (
	ErrUnknownCard   = errors.New("unknown card")
	ErrDeckSize      = errors.New("deck has the wrong number of cards")
	ErrTooManyCopies = errors.New("deck exceeds the copy limit for a card")
)

// CopyLimits caps how many copies of one card a deck may hold.
type CopyLimits struct {
	NonLegendary int
	Legendary    int
}

var DefaultCopyLimits = CopyLimits{NonLegendary: 2, Legendary: 1}

func (l CopyLimits) forRarity(r game.Rarity) int {
	if r == game.RarityLegendary {
		return l.Legendary
	}
	return l.NonLegendary
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	byID    map[string]game.CardPrototype
	ordered []game.CardPrototype
}

// New validates the prototypes and builds a catalog.
func New(cards []game.CardPrototype) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]game.CardPrototype, len(cards))}
	seen := make(map[string]struct{}, len(cards))
	for _, p := range cards {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("card %q: missing id", p.Name)
		}
		lid := strings.ToLower(id)
		if _, dup := seen[lid]; dup {
			return nil, fmt.Errorf("duplicate card id %q", id)
		}
		seen[lid] = struct{}{}
		if !p.Rarity.Valid() {
			return nil, fmt.Errorf("card %s: unknown rarity %q", id, p.Rarity)
		}
		if p.Cost < 0 {
			return nil, fmt.Errorf("card %s: negative cost", id)
		}
		if p.Attack != nil && p.Health == nil {
			return nil, fmt.Errorf("card %s: minion without health", id)
		}
		for _, a := range p.Abilities {
			if !a.Type.Valid() {
				return nil, fmt.Errorf("card %s: unknown ability %q", id, a.Type)
			}
		}
		p.ID = id
		c.byID[id] = p
		c.ordered = append(c.ordered, p)
	}
	// summon targets are checked once every id is known
	for _, p := range c.ordered {
		for _, a := range p.Abilities {
			if a.Effect != nil && a.Effect.Kind == game.EffectSummon {
				target, ok := c.byID[a.Effect.CardID]
				if !ok || !target.IsMinion() {
					return nil, fmt.Errorf("card %s: summons unknown minion %q", p.ID, a.Effect.CardID)
				}
			}
		}
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Default returns the catalog of built-in cards.
func Default() *Catalog {
	c, err := New(DefaultCards())
	if err != nil {
		panic(err)
	}
	return c
}

// Merge overlays override prototypes on base by id; new ids are appended.
func Merge(base, overrides []game.CardPrototype) []game.CardPrototype {
	out := make([]game.CardPrototype, len(base))
	copy(out, base)
	idx := make(map[string]int, len(out))
	for i, p := range out {
		idx[p.ID] = i
	}
	for _, p := range overrides {
		if i, ok := idx[p.ID]; ok {
			out[i] = p
			continue
		}
		idx[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

// Get returns the prototype for id.
func (c *Catalog) Get(id string) (game.CardPrototype, bool) {
	p, ok := c.byID[id]
	if !ok {
		return game.CardPrototype{}, false
	}
	p.Abilities = append([]game.Ability(nil), p.Abilities...)
	return p, true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every prototype sorted by id.
func (c *Catalog) All() []game.CardPrototype {
	out := make([]game.CardPrototype, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDsByRarity lists the ids of one rarity in id order.
func (c *Catalog) IDsByRarity(r game.Rarity) []string {
	var out []string
	for _, p := range c.ordered {
		if p.Rarity == r {
			out = append(out, p.ID)
		}
	}
	return out
}

// Instantiate creates a fresh battle instance with a new unique id.
func (c *Catalog) Instantiate(id string) (game.CardInstance, error) {
	p, ok := c.byID[id]
	if !ok {
		return game.CardInstance{}, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return FromPrototype(p), nil
}

// FromPrototype builds an unplayed instance of p.
func FromPrototype(p game.CardPrototype) game.CardInstance {
	ci := game.CardInstance{
		UUID:        uuid.NewString(),
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Cost:        p.Cost,
		Rarity:      p.Rarity,
		Abilities:   append([]game.Ability{}, p.Abilities...),
		CardType:    p.CardType,
		ImageURL:    p.ImageURL,
	}
	if p.IsMinion() {
		ci.Minion = true
		ci.Attack = *p.Attack
		ci.MaxHealth = *p.Health
		ci.CurrentHealth = *p.Health
	}
	return ci
}

// RandomDeck draws size card ids from the pool honoring the copy limits.
// The result is shorter than size only when the pool cannot fill it.
func (c *Catalog) RandomDeck(rng *rand.Rand, size int, limits CopyLimits) []string {
	pool := make([]game.CardPrototype, len(c.ordered))
	copy(pool, c.ordered)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	counts := make(map[string]int, size)
	deck := make([]string, 0, size)
	// first pass takes one copy of each card, the second tops up duplicates
	for pass := 1; pass <= 2 && len(deck) < size; pass++ {
		for _, p := range pool {
			if len(deck) >= size {
				break
			}
			if counts[p.ID] < pass && counts[p.ID] < limits.forRarity(p.Rarity) {
				deck = append(deck, p.ID)
				counts[p.ID]++
			}
		}
	}
	return deck
}

// ValidateDeck checks a deck list against the playable deck rules.
func (c *Catalog) ValidateDeck(ids []string, size int, limits CopyLimits) error {
	if len(ids) != size {
		return fmt.Errorf("%w: got %d, want %d", ErrDeckSize, len(ids), size)
	}
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		p, ok := c.byID[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCard, id)
		}
		counts[id]++
		if counts[id] > limits.forRarity(p.Rarity) {
			return fmt.Errorf("%w: %s", ErrTooManyCopies, id)
		}
	}
	return nil
}
