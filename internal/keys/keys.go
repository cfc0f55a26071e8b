package keys

import (
	"sort"
	"strings"
)

// DeckKeyFromCardIDs produces a canonical key for a deck list.
// Behavior: trims ids, lower-cases, drops empties, sorts the parts and joins
// with a comma. Copies are kept, so two decks share a key only when they hold
// the same cards in the same counts. Suitable for stable DB keys.
func DeckKeyFromCardIDs(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		s := strings.ToLower(strings.TrimSpace(id))
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
