package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rustyeddy/starters/names"
)

// ErrPlayerNotFound means the lookup service knows no such player.
var ErrPlayerNotFound = errors.New("player not found")

// DefaultLookupURL is the public people-search endpoint.
const DefaultLookupURL = "https://statsapi.mlb.com/api/v1/people/search"

// Resolver turns a pitcher's name into the provider's numeric player ID.
type Resolver interface {
	Resolve(ctx context.Context, name string) (int, error)
}

// LookupResolver queries a people-search JSON endpoint.
type LookupResolver struct {
	Client *resty.Client
	URL    string
}

type peopleResp struct {
	People []struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"people"`
}

// Resolve looks the player up by first and last name, ignoring suffixes such
// as "Jr." The first match wins.
func (r LookupResolver) Resolve(ctx context.Context, name string) (int, error) {
	first, last, ok := names.FirstLast(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	url := r.URL
	if url == "" {
		url = DefaultLookupURL
	}
	client := r.Client
	if client == nil {
		client = resty.New()
	}

	var out peopleResp
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"names":    names.Fold(first + " " + last),
			"sportIds": "1",
		}).
		SetResult(&out).
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("lookup %q: %w", name, err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("lookup %q: http %d: %s", name, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if len(out.People) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return out.People[0].ID, nil
}

// Slug is the provider path segment for a resolved player.
func Slug(name string, id int) string {
	return names.Slug(name) + "-" + strconv.Itoa(id)
}
