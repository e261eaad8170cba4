package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-pricing/internal/model"
)

func TestResponseCache(t *testing.T) {
	c := NewResponseCache(time.Hour)
	key := CacheKey("pnl-by-month", "2025-04", "2025-06")

	_, ok := c.Get(key)
	assert.False(t, ok)

	resp := &model.AnalyticsExportResponse{StatusCode: 200}
	c.Set(key, resp)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, resp, got)

	c.Clear()
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestResponseCacheExpiry(t *testing.T) {
	c := NewResponseCache(time.Millisecond)
	key := CacheKey("occupancy-by-day", "2025-06-08", "2025-06-14")
	c.Set(key, &model.AnalyticsExportResponse{})

	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestResponseCacheNilSafe(t *testing.T) {
	var c *ResponseCache
	c.Set("k", &model.AnalyticsExportResponse{})
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Clear()
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("pnl-by-month", "2025-04", "2025-06")
	b := CacheKey("pnl-by-month", "2025-04", "2025-06")
	other := CacheKey("pnl-by-month", "2025-05", "2025-06")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}

func TestFetchUsesCache(t *testing.T) {
	// The second fetch for the same range must not hit the provider again.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status_code": 200, "monthly": []}`))
	}))
	defer srv.Close()

	client := NewAnalyticsClient("test-key", srv.URL)
	for i := 0; i < 2; i++ {
		_, err := client.FetchMonthlyExpenses(context.Background(), 2025, 4, 2025, 6)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}
