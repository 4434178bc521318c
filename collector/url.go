package collector

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the statistics site the game logs come from.
const DefaultBaseURL = "https://baseballsavant.mlb.com"

// GamelogURL builds the regular-season pitching game-log page for a player slug.
func GamelogURL(base, slug string, season int) string {
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("stats", "gamelogs-r-pitching-mlb")
	q.Set("season", fmt.Sprint(season))
	return strings.TrimRight(base, "/") + "/savant-player/" + url.PathEscape(slug) + "?" + q.Encode()
}
