package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"office-pricing/internal/model"
)

// AnalyticsClient fetches raw financial and occupancy exports from the
// third-party analytics provider. The pricing core never calls this; a sync
// step runs it before a pipeline and lands rows in the store.
type AnalyticsClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	cache   *ResponseCache
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewAnalyticsClient creates a provider client. If baseURL is empty it
// defaults to the hosted endpoint. Requests are rate limited to stay inside
// the provider quota and wrapped in a circuit breaker so a flapping provider
// fails fast instead of hanging every sync.
func NewAnalyticsClient(apiKey, baseURL string) *AnalyticsClient {
	if baseURL == "" {
		baseURL = "https://analytics.example.com"
	}
	return &AnalyticsClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:   NewResponseCache(15 * time.Minute),
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "analytics",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// ProviderError represents an error response from the analytics provider.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *ProviderError) Error() string { return e.Message }

// FetchMonthlyExpenses pulls the monthly P&L export for the inclusive
// year/month range.
func (c *AnalyticsClient) FetchMonthlyExpenses(ctx context.Context, fromYear, fromMonth, toYear, toMonth int) ([]model.MonthlyExpenseRow, error) {
	q := url.Values{}
	q.Set("from", fmt.Sprintf("%04d-%02d", fromYear, fromMonth))
	q.Set("to", fmt.Sprintf("%04d-%02d", toYear, toMonth))

	resp, err := c.get(ctx, "/v1/exports/pnl-by-month", q)
	if err != nil {
		return nil, err
	}
	return resp.Monthly, nil
}

// FetchDailyOccupancies pulls the daily occupancy export for the inclusive
// date range.
func (c *AnalyticsClient) FetchDailyOccupancies(ctx context.Context, from, to time.Time) ([]model.DailyOccupancyRow, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	resp, err := c.get(ctx, "/v1/exports/occupancy-by-day", q)
	if err != nil {
		return nil, err
	}
	return resp.Daily, nil
}

func (c *AnalyticsClient) get(ctx context.Context, path string, q url.Values) (*model.AnalyticsExportResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("analytics API key is required")
	}

	key := CacheKey(path, q.Get("from"), q.Get("to"))
	if cached, ok := c.cache.Get(key); ok {
		log.Debug().Str("path", path).Msg("analytics cache hit")
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.RawQuery = q.Encode()

	out, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		req.Header.Set("Accept", "application/json")

		log.Debug().Str("url", u.Redacted()).Msg("analytics request")
		httpResp, err := c.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, err
		}
		if httpResp.StatusCode != http.StatusOK {
			return nil, parseProviderError(httpResp, body)
		}

		var resp model.AnalyticsExportResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode analytics response: %w", err)
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	resp := out.(*model.AnalyticsExportResponse)
	c.cache.Set(key, resp)
	return resp, nil
}

func parseProviderError(resp *http.Response, body []byte) error {
	pe := &ProviderError{
		StatusCode: resp.StatusCode,
		Code:       "PROVIDER_ERROR",
		Message:    fmt.Sprintf("analytics provider returned %d", resp.StatusCode),
		RetryAfter: resp.Header.Get("Retry-After"),
	}
	var wire struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		pe.Code = wire.Error.Code
		pe.Message = wire.Error.Message
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		pe.Code = "INVALID_API_KEY"
	case http.StatusTooManyRequests:
		pe.Code = "RATE_LIMITED"
	}
	return pe
}
