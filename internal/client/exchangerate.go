package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RateClient fetches the latest exchange rates for a base currency.
type RateClient interface {
	LatestRates(ctx context.Context, base string) (map[string]float64, error)
}

// ExchangeRateClient implements RateClient against the exchangerate-api.com
// v4 endpoint. The API is keyless; the rate table is fetched fresh on every
// call (rates are not cached, per the product contract).
type ExchangeRateClient struct {
	baseURL string
	client  *http.Client
}

// NewExchangeRateClient returns a client for baseURL (e.g.
// "https://api.exchangerate-api.com/v4/latest") with a per-call timeout.
func NewExchangeRateClient(baseURL string, timeout time.Duration) *ExchangeRateClient {
	return &ExchangeRateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type exchangeRateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// LatestRates fetches the current rate table for the base currency, keyed by
// upper-case currency code.
func (c *ExchangeRateClient) LatestRates(ctx context.Context, base string) (map[string]float64, error) {
	reqURL := c.baseURL + "/" + strings.ToUpper(base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}

	var rates exchangeRateResponse
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}
	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", ErrUpstream)
	}
	return rates.Rates, nil
}
