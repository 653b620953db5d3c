package models

type FeedbackRequest struct {
	// Customer's free-text feedback for one rendition. Must not be empty.
	Feedback string `json:"feedback" example:"Make the nose a little smaller"`
}

type ContactRequest struct {
	// Message body forwarded to the support inbox
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
