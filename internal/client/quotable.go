package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/infohub/server/internal/models"
)

// QuoteClient fetches one random quote.
type QuoteClient interface {
	RandomQuote(ctx context.Context) (models.Quote, error)
}

// QuotableClient implements QuoteClient against the quotable.io random-quote
// endpoint, filtered to the motivational tag.
type QuotableClient struct {
	baseURL string
	tags    string
	client  *http.Client
}

// NewQuotableClient returns a client for baseURL (e.g.
// "https://api.quotable.io/random") with a per-call timeout.
func NewQuotableClient(baseURL string, timeout time.Duration) *QuotableClient {
	return &QuotableClient{
		baseURL: baseURL,
		tags:    "motivational",
		client:  &http.Client{Timeout: timeout},
	}
}

type quotableResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// RandomQuote fetches one random motivational quote.
func (c *QuotableClient) RandomQuote(ctx context.Context) (models.Quote, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return models.Quote{}, fmt.Errorf("invalid API URL: %w", err)
	}
	params := url.Values{}
	params.Set("tags", c.tags)
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return models.Quote{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Quote{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Quote{}, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}

	var q quotableResponse
	if err := json.Unmarshal(body, &q); err != nil {
		return models.Quote{}, fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}
	if q.Content == "" {
		return models.Quote{}, fmt.Errorf("%w: empty quote", ErrUpstream)
	}
	return models.Quote{Text: q.Content, Author: q.Author}, nil
}
