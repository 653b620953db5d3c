package models

import "time"

type OrderCreatedResponse struct {
	SessionID  string `json:"session_id"`
	CustomerID string `json:"customer_id"`
}

// CustomerRendition is one entry in the customer view, shaped
// {url, feedback, rendition_number}. Only renditions still awaiting
// feedback appear there, so Feedback is always empty; the rendition
// number is the ledger index the feedback form posts back to.
type CustomerRendition struct {
	URL             string `json:"url"`
	Feedback        string `json:"feedback"`
	RenditionNumber int    `json:"rendition_number"`
}

type CustomerViewResponse struct {
	CustomerID string              `json:"customer_id"`
	Name       string              `json:"name"`
	Notes      string              `json:"notes"`
	Status     RenditionStatus     `json:"rendition_status"`
	MugshotURL string              `json:"mugshot_url,omitempty"`
	Renditions []CustomerRendition `json:"renditions,omitempty"`
	// NotReady is set while the first rendition is still being drawn.
	NotReady bool `json:"not_ready,omitempty"`
	// AwaitingRendition is set after feedback was submitted, before the
	// artist answers with a new rendition.
	AwaitingRendition bool `json:"awaiting_rendition,omitempty"`
}

type ArtistRendition struct {
	URL      string `json:"url"`
	Feedback string `json:"feedback"`
}

type ArtistViewResponse struct {
	CustomerID string            `json:"customer_id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Notes      string            `json:"notes"`
	Status     RenditionStatus   `json:"rendition_status"`
	MugshotURL string            `json:"mugshot_url"`
	Renditions []ArtistRendition `json:"renditions"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

type FeedbackViewResponse struct {
	CustomerID      string `json:"customer_id"`
	RenditionNumber int    `json:"rendition_number"`
	RenditionURL    string `json:"rendition_url"`
}

type MugshotResponse struct {
	CustomerID string `json:"customer_id"`
	MugshotURL string `json:"mugshot_url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
