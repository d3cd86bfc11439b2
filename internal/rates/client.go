// Package rates talks to the external exchange-rate provider. Lookups are
// single-shot: no retries and no caching, a missing rate is the caller's
// problem to surface.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the provider's date path format for historical rates.
const DateLayout = "2006-01-02"

// Client queries a frankfurter-style rate API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a rate client for the given API base URL. A nil httpClient
// falls back to a default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// rateResponse is the provider's body for latest and historical lookups.
type rateResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Rate returns the conversion rate from one currency into another on the
// given date. Same-currency conversions short-circuit to 1 without any HTTP
// call; dates on or after today use the provider's latest quote.
func (c *Client) Rate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	path := "latest"
	if day := date.Format(DateLayout); day < time.Now().UTC().Format(DateLayout) {
		path = day
	}
	endpoint := fmt.Sprintf("%s/%s?from=%s&to=%s", c.baseURL, path, url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: %w", from, to, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: unexpected status %d", from, to, resp.StatusCode)
	}
	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: decode: %w", from, to, err)
	}
	rate, ok := body.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: rate missing from response", from, to)
	}
	return rate, nil
}

// Currencies fetches the provider's currency catalog as code -> display name.
func (c *Client) Currencies(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/currencies", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("currency catalog: unexpected status %d", resp.StatusCode)
	}
	catalog := map[string]string{}
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("currency catalog: decode: %w", err)
	}
	return catalog, nil
}
