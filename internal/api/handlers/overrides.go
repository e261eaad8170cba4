package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"office-pricing/internal/api/middleware"
	"office-pricing/internal/api/models"
	"office-pricing/internal/model"
	"office-pricing/internal/service"
)

// OverrideHandler serves the manual override log.
type OverrideHandler struct {
	svc *service.Service
}

func NewOverrideHandler(svc *service.Service) *OverrideHandler {
	return &OverrideHandler{svc: svc}
}

// CreateOverride handles POST /api/v1/overrides. The entry is appended to
// the log; it never mutates earlier entries.
func (h *OverrideHandler) CreateOverride(c *gin.Context) {
	var req models.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	analyst := c.GetString(middleware.AnalystNameKey)
	saved, err := h.svc.RecordOverride(model.Override{
		Location:      req.Location,
		Year:          req.Year,
		Month:         req.Month,
		AnalystName:   analyst,
		Reason:        req.Reason,
		OverridePrice: req.OverridePrice,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "OVERRIDE_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusCreated, models.OverrideResponse{Override: saved})
}

// ListOverrides handles GET /api/v1/overrides/:location.
func (h *OverrideHandler) ListOverrides(c *gin.Context) {
	location := c.Param("location")
	history, err := h.svc.OverrideHistory(location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "OVERRIDE_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, models.OverrideHistoryResponse{
		Location:  location,
		Overrides: history,
	})
}
