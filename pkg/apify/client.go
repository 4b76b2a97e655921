// Package apify wraps the Apify Google Places crawler actor used as the
// external business-search source.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/internal/resilience"
)

const (
	defaultBaseURL = "https://api.apify.com/v2"
	defaultActor   = "compass~crawler-google-places"
)

// Client runs place searches through the Apify actor.
type Client interface {
	SearchPlaces(ctx context.Context, req SearchRequest) ([]PlaceItem, error)
}

// SearchRequest is the actor input for one synchronous search run.
type SearchRequest struct {
	SearchStringsArray []string `json:"searchStringsArray"`
	LocationQuery      string   `json:"locationQuery"`
	MaxCrawledPlaces   int      `json:"maxCrawledPlacesPerSearch,omitempty"`
}

// PlaceItem is one scraped place from the actor's dataset. Field names
// follow the actor's output schema.
type PlaceItem struct {
	PlaceID           string   `json:"placeId"`
	Title             string   `json:"title"`
	CategoryName      string   `json:"categoryName"`
	Categories        []string `json:"categories"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	Website           string   `json:"website"`
	TotalScore        float64  `json:"totalScore"`
	ReviewsCount      int      `json:"reviewsCount"`
	PermanentlyClosed bool     `json:"permanentlyClosed"`
	TemporarilyClosed bool     `json:"temporarilyClosed"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithActor overrides the default actor ID.
func WithActor(actor string) Option {
	return func(c *httpClient) {
		c.actor = actor
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	token   string
	baseURL string
	actor   string
	http    *http.Client
}

// NewClient creates an Apify client. The timeout is generous because the
// run-sync endpoint holds the connection open while the actor crawls.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		actor:   defaultActor,
		http: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchPlaces runs the actor synchronously and returns its dataset items.
// Auth and quota failures are classified so callers can phrase their
// fallback messaging.
func (c *httpClient) SearchPlaces(ctx context.Context, req SearchRequest) ([]PlaceItem, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "apify: marshal request")
	}

	url := c.baseURL + "/acts/" + c.actor + "/run-sync-get-dataset-items?token=" + c.token
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apify: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apify: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apify: read response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		apiErr := eris.Errorf("apify: unexpected status %d: %s", resp.StatusCode, truncate(respBody, 200))
		return nil, resilience.NewBoundaryError(apiErr, resp.StatusCode)
	}

	var items []PlaceItem
	if err := json.Unmarshal(respBody, &items); err != nil {
		return nil, eris.Wrap(err, "apify: unmarshal dataset items")
	}

	return items, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
