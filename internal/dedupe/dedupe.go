// Package dedupe provides shared singleflight groups used to collapse
// concurrent first-visit work for the same player into a single call.
package dedupe

import "golang.org/x/sync/singleflight"

// ProfileGroup deduplicates profile creation keyed by "profile:<playerID>".
var ProfileGroup singleflight.Group

// ProfileKey returns the ProfileGroup key for a player.
func ProfileKey(playerID string) string {
	return "profile:" + playerID
}
