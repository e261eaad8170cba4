package models

// OverrideRequest creates one entry in the override log. The analyst name
// comes from the authenticated token, not the body.
type OverrideRequest struct {
	Location      string  `json:"location" binding:"required"`
	Year          int     `json:"year" binding:"required"`
	Month         int     `json:"month" binding:"required,min=1,max=12"`
	Reason        string  `json:"reason" binding:"required"`
	OverridePrice float64 `json:"override_price" binding:"required,gt=0"`
}

// ChatMessage is the inbound chat webhook payload (the subset we read).
type ChatMessage struct {
	Message struct {
		Text   string `json:"text"`
		Sender struct {
			DisplayName string `json:"displayName"`
		} `json:"sender"`
	} `json:"message"`
}
