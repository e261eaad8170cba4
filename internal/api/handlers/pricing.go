package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"office-pricing/internal/api/models"
	"office-pricing/internal/service"
)

// PricingHandler serves pricing pipeline results.
type PricingHandler struct {
	svc *service.Service
}

func NewPricingHandler(svc *service.Service) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ListPricing handles GET /api/v1/pricing. Optional year/month/date query
// params pick the anchor; default is today.
func (h *PricingHandler) ListPricing(c *gin.Context) {
	anchor, err := anchorFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_PERIOD", Message: err.Error()},
		})
		return
	}

	batch, err := h.svc.RunPipeline(c.Request.Context(), anchor, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PIPELINE_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, models.BatchResponse{
		AnchorDate: batch.AnchorDate,
		Results:    batch.Results,
		Skips:      batch.Skips,
	})
}

// GetPricing handles GET /api/v1/pricing/:location.
func (h *PricingHandler) GetPricing(c *gin.Context) {
	anchor, err := anchorFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_PERIOD", Message: err.Error()},
		})
		return
	}
	location := c.Param("location")

	res, err := h.svc.PricingFor(c.Request.Context(), anchor, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PIPELINE_ERROR", Message: err.Error()},
		})
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "no pricing data for location " + location},
		})
		return
	}
	c.JSON(http.StatusOK, res)
}

// anchorFromQuery resolves the anchor date: an explicit date wins, then
// year+month (anchored to the first of the month), then today.
func anchorFromQuery(c *gin.Context) (time.Time, error) {
	if d := c.Query("date"); d != "" {
		return time.Parse("2006-01-02", d)
	}
	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" && monthStr == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return time.Time{}, err
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			return time.Time{}, err
		}
		month = m
	}
	if month < 1 || month > 12 {
		return time.Time{}, errors.New("month must be between 1 and 12")
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
