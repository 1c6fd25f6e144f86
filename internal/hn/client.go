package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"
)

// Searcher runs a query against the search endpoint.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Item, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

const (
	// DefaultEndpoint is the public Hacker News search API.
	DefaultEndpoint  = "https://hn.algolia.com/api/v1/search"
	defaultUserAgent = "hnsearch/0.1"
)

// ClientOptions tune the HTTP behaviour of a Client.
type ClientOptions struct {
	// Timeout bounds a single request. Zero means no timeout.
	Timeout   time.Duration
	Limiter   *rate.Limiter
	UserAgent string
}

// Client talks to the search endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	policy    *bluemonday.Policy
}

// NewClient builds a Client for the given endpoint URL.
func NewClient(endpoint string, opts ClientOptions) (*Client, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		endpoint:  base,
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   opts.Limiter,
		userAgent: ua,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

// SearchURL returns the request URL used for query.
func (c *Client) SearchURL(query string) string {
	u := *c.endpoint
	values := u.Query()
	values.Set("query", query)
	u.RawQuery = values.Encode()
	return u.String()
}

// Search fetches the hits for query and normalizes them into Items.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	var payload SearchResponse
	if err := c.get(ctx, c.SearchURL(query), &payload); err != nil {
		return nil, err
	}
	return c.normalize(payload.Hits), nil
}

func (c *Client) get(ctx context.Context, reqURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("search %s returned status %d", c.endpoint.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalize drops hits without an id and repeated ids, keeping server order.
func (c *Client) normalize(hits []Hit) []Item {
	items := make([]Item, 0, len(hits))
	seen := make(map[ItemID]struct{}, len(hits))
	for _, h := range hits {
		if h.ObjectID == "" {
			continue
		}
		if _, dup := seen[h.ObjectID]; dup {
			continue
		}
		seen[h.ObjectID] = struct{}{}
		items = append(items, Item{
			ID:          h.ObjectID,
			Title:       c.plain(h.Title),
			URL:         strings.TrimSpace(h.URL),
			Author:      c.plain(h.Author),
			NumComments: max(h.NumComments, 0),
			Points:      h.Points,
		})
	}
	return items
}

// plain strips markup; the policy escapes entities so they are decoded again.
func (c *Client) plain(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
