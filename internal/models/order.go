package models

import (
	"strings"
	"time"
)

// RenditionStatus is the lifecycle state of an order. It is stored
// denormalized on the order row but is always recomputed from the
// renditions list inside the same atomic update that mutates the list,
// so it can never drift from the ledger.
type RenditionStatus string

const (
	// StatusPendingFirstRendition - order paid, artist has not submitted anything yet
	StatusPendingFirstRendition RenditionStatus = "pending-first-rendition"
	// StatusPendingFeedback - the latest rendition is waiting on the customer
	StatusPendingFeedback RenditionStatus = "pending-feedback"
	// StatusPendingRendition - customer has answered, artist owes a new rendition
	StatusPendingRendition RenditionStatus = "pending-rendition"
)

// FeedbackSuperseded marks renditions whose feedback round was cut short
// because the customer uploaded a new mugshot. The exact text is part of
// the stored data contract.
const FeedbackSuperseded = "N/A: Customer uploaded new mugshot"

// Rendition is one artist submission. Name references the stored image
// asset, not the bytes. A nil Feedback means the customer has not
// responded yet; it serializes as JSON null.
type Rendition struct {
	Name     string  `json:"name"`
	Feedback *string `json:"feedback"`
}

// HasFeedback reports whether the customer has responded to this rendition.
func (r Rendition) HasFeedback() bool {
	return r.Feedback != nil
}

type Order struct {
	CustomerID       string          `json:"customer_id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Notes            string          `json:"notes"`
	PaymentSessionID string          `json:"payment_session_id"`
	RenditionStatus  RenditionStatus `json:"rendition_status"`
	Renditions       []Rendition     `json:"renditions"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DeriveStatus computes the order status from the ledger alone. Only the
// last rendition matters: out-of-order feedback writes (a customer
// navigating back to revise an earlier answer) must not regress status.
func DeriveStatus(renditions []Rendition) RenditionStatus {
	if len(renditions) == 0 {
		return StatusPendingFirstRendition
	}
	if !renditions[len(renditions)-1].HasFeedback() {
		return StatusPendingFeedback
	}
	return StatusPendingRendition
}

var feedbackLineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// NormalizeFeedback collapses embedded line breaks to single spaces.
// Feedback is rendered inline in Slack messages and artist views, so it
// is stored one-line.
func NormalizeFeedback(text string) string {
	return feedbackLineBreaks.Replace(text)
}
