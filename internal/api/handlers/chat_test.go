package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatCommand(t *testing.T) {
	loc, anchor, err := parseChatCommand("price Downtown Hub 2025-06")
	require.NoError(t, err)
	assert.Equal(t, "Downtown Hub", loc)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), anchor)

	loc, _, err = parseChatCommand("price all")
	require.NoError(t, err)
	assert.Equal(t, "all", loc)

	// Without a period token the whole tail is the location.
	loc, _, err = parseChatCommand("PRICE downtown hub")
	require.NoError(t, err)
	assert.Equal(t, "downtown hub", loc)

	_, _, err = parseChatCommand("price")
	assert.Error(t, err)
	_, _, err = parseChatCommand("hello there")
	assert.Error(t, err)
}

func TestHandleMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(t)
	r := gin.New()
	r.POST("/webhooks/chat", NewChatHandler(svc).HandleMessage)

	body := `{"message":{"text":"price Downtown Hub 2025-06","sender":{"displayName":"Lee"}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Downtown Hub")
	assert.Contains(t, w.Body.String(), "Recommended Price")
}

func TestHandleMessageUnknownCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(t)
	r := gin.New()
	r.POST("/webhooks/chat", NewChatHandler(svc).HandleMessage)

	body := `{"message":{"text":"weather tomorrow","sender":{"displayName":"Lee"}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "usage: price")
}
