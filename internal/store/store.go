// Package store owns durable persistence of orders and their rendition
// ledger. Every mutation is a single atomic patch that also recomputes
// rendition_status, so concurrent artist/customer requests against the
// same order cannot leave a stale status behind.
package store

import (
	"context"
	"errors"

	"mymoji-backend/internal/models"
)

var (
	// ErrNotFound - no order exists for the given customer id
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyExists - an order with that customer id was already created
	ErrAlreadyExists = errors.New("order already exists")
	// ErrRenditionIndex - a feedback patch referenced a rendition index
	// outside the ledger
	ErrRenditionIndex = errors.New("rendition index out of range")
	// ErrConflict - a patch precondition was violated
	ErrConflict = errors.New("patch precondition violated")
)

// Store is the order persistence contract. Implementations must apply
// each mutation as one atomic operation, never a read-then-write pair.
type Store interface {
	// Create inserts a new order. Fails with ErrAlreadyExists on a
	// customer id collision.
	Create(ctx context.Context, order *models.Order) error

	// Get returns the full order or ErrNotFound.
	Get(ctx context.Context, customerID string) (*models.Order, error)

	// AppendRendition adds a rendition with no feedback to the end of
	// the ledger and moves the order to pending-feedback.
	AppendRendition(ctx context.Context, customerID, assetName string) error

	// SetFeedback records the customer's text against the rendition at
	// the given 0-based index, normalizing line breaks first. Status is
	// recomputed from the ledger in the same patch. Fails with
	// ErrRenditionIndex when the index does not reference an existing
	// rendition.
	SetFeedback(ctx context.Context, customerID string, index int, feedback string) error

	// ClearPendingFeedback marks every rendition still awaiting feedback
	// as superseded. Used only by the mugshot-replacement flow.
	ClearPendingFeedback(ctx context.Context, customerID string) error

	// Touch refreshes updated_at without changing the ledger.
	Touch(ctx context.Context, customerID string) error
}
