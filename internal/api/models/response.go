package models

import (
	"time"

	"office-pricing/internal/model"
)

// BatchResponse is the response for a full pipeline run.
type BatchResponse struct {
	AnchorDate time.Time             `json:"anchor_date"`
	Results    []model.PricingResult `json:"results"`
	Skips      []model.Skip          `json:"skips,omitempty"`
}

// OverrideResponse echoes a recorded override entry.
type OverrideResponse struct {
	Override model.Override `json:"override"`
}

// OverrideHistoryResponse lists the audit log for one location.
type OverrideHistoryResponse struct {
	Location  string           `json:"location"`
	Overrides []model.Override `json:"overrides"`
}

// ChatResponse is the plain-text reply posted back to the chat thread.
type ChatResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
