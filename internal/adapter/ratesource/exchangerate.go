package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// Client fetches rate tables from an exchangerate-api compatible endpoint.
// Both the open v4 shape ({"base", "rates"}) and the v6 shape
// ({"result", "base_code", "conversion_rates"}) are accepted.
type Client struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// NewClient creates a new Client.
func NewClient(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "ratesource").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type ratesResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	Base            string                     `json:"base"`
	BaseCode        string                     `json:"base_code"`
	Rates           map[string]decimal.Decimal `json:"rates"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
	TimeLastUpdated int64                      `json:"time_last_updated"`
	TimeLastUnix    int64                      `json:"time_last_update_unix"`
}

// FetchRates implements usecase.RateSource.
func (c *Client) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &domain.RateFetchError{Reason: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", c.url).Msg("rate source unreachable")
		return nil, &domain.RateFetchError{Reason: "transport", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RateFetchError{Reason: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RateFetchError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	return c.parse(body)
}

func (c *Client) parse(body []byte) (*domain.RateTable, error) {
	var payload ratesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.RateFetchError{Reason: "malformed response", Err: err}
	}

	if payload.Result == "error" {
		return nil, &domain.RateFetchError{Reason: "upstream error: " + payload.ErrorType}
	}

	raw := payload.Rates
	if len(raw) == 0 {
		raw = payload.ConversionRates
	}
	if len(raw) == 0 {
		return nil, &domain.RateFetchError{Reason: "missing rates"}
	}

	rates := make(map[string]decimal.Decimal, len(raw))
	for code, rate := range raw {
		normalized, ok := domain.NormalizeCurrencyCode(code)
		if !ok {
			c.logger.Debug().Str("code", code).Msg("skipping malformed currency code")
			continue
		}
		rates[normalized] = rate
	}

	base := payload.Base
	if base == "" {
		base = payload.BaseCode
	}

	fetchedAt := c.now()
	if ts := max(payload.TimeLastUpdated, payload.TimeLastUnix); ts > 0 {
		fetchedAt = time.Unix(ts, 0).UTC()
	}

	table := &domain.RateTable{
		Base:      base,
		Rates:     rates,
		FetchedAt: fetchedAt,
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}
