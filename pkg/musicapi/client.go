package musicapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrDataUnavailable is returned whenever the external catalog cannot supply
// usable data: unreachable service, non-200 response, undecodable body, or an
// empty results array. Callers are expected to degrade gracefully.
var ErrDataUnavailable = errors.New("artist data unavailable")

// Config holds the external music catalog connection details.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client looks up supplementary artist metadata from the external catalog.
// It is stateless; nothing is cached locally.
type Client struct {
	http *resty.Client
}

// ArtistProfile is the enrichment payload for one artist.
type ArtistProfile struct {
	ArtistID int    `json:"artistId"`
	URL      string `json:"artistLinkUrl"`
	Genre    string `json:"primaryGenreName"`
}

type searchResponse struct {
	ResultCount int             `json:"resultCount"`
	Results     []ArtistProfile `json:"results"`
}

// NewClient creates a new music catalog client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: cli}
}

// SearchArtist resolves a free-text artist name to the external catalog's
// artist identifier, taking the first search result.
func (c *Client) SearchArtist(ctx context.Context, term string) (int, error) {
	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("term", term).
		SetResult(&body).
		Get("/search")
	if err != nil {
		return 0, fmt.Errorf("%w: search request for %q failed: %v", ErrDataUnavailable, term, err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("%w: search for %q returned status %d", ErrDataUnavailable, term, resp.StatusCode())
	}
	if len(body.Results) == 0 {
		return 0, fmt.Errorf("%w: no search results for %q", ErrDataUnavailable, term)
	}
	return body.Results[0].ArtistID, nil
}

// GetArtistProfile fetches the canonical profile URL and primary genre for an
// artist identifier obtained from SearchArtist.
func (c *Client) GetArtistProfile(ctx context.Context, artistID int) (*ArtistProfile, error) {
	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", strconv.Itoa(artistID)).
		SetResult(&body).
		Get("/lookup")
	if err != nil {
		return nil, fmt.Errorf("%w: lookup request for artist %d failed: %v", ErrDataUnavailable, artistID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: lookup for artist %d returned status %d", ErrDataUnavailable, artistID, resp.StatusCode())
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: no lookup results for artist %d", ErrDataUnavailable, artistID)
	}
	return &body.Results[0], nil
}
