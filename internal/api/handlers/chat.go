package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"office-pricing/internal/api/models"
	"office-pricing/internal/format"
	"office-pricing/internal/service"
)

// ChatHandler answers chat-bot webhook messages with formatted pricing
// text. Commands: "price <location> [YYYY-MM]" or "price all [YYYY-MM]".
type ChatHandler struct {
	svc *service.Service
}

func NewChatHandler(svc *service.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// HandleMessage handles POST /webhooks/chat.
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var msg models.ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	reply := h.reply(c, msg.Message.Text)
	c.JSON(http.StatusOK, models.ChatResponse{Text: reply})
}

func (h *ChatHandler) reply(c *gin.Context, text string) string {
	location, anchor, err := parseChatCommand(text)
	if err != nil {
		return err.Error()
	}

	if location == "all" {
		batch, err := h.svc.RunPipeline(c.Request.Context(), anchor, "")
		if err != nil {
			return "Pricing run failed: " + err.Error()
		}
		var b strings.Builder
		for _, res := range batch.Results {
			b.WriteString(format.Text(res, false))
			b.WriteString("\n")
		}
		b.WriteString(format.Skips(batch.Skips))
		if b.Len() == 0 {
			return "No pricing data for the requested period."
		}
		return b.String()
	}

	res, err := h.svc.PricingFor(c.Request.Context(), anchor, location)
	if err != nil {
		return "Pricing run failed: " + err.Error()
	}
	if res == nil {
		return fmt.Sprintf("No pricing data for %q in the requested period.", location)
	}
	return format.Text(*res, true)
}

// parseChatCommand reads "price <location...> [YYYY-MM]". The trailing
// period token is optional; everything between is the location name.
func parseChatCommand(text string) (location string, anchor time.Time, err error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "price") {
		return "", time.Time{}, fmt.Errorf("usage: price <location|all> [YYYY-MM]")
	}
	args := fields[1:]

	now := time.Now().UTC()
	anchor = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	last := args[len(args)-1]
	if t, perr := time.Parse("2006-01", last); perr == nil {
		anchor = t
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return "", time.Time{}, fmt.Errorf("usage: price <location|all> [YYYY-MM]")
	}
	return strings.Join(args, " "), anchor, nil
}
