// Package view shapes an order into the data each viewer role is
// allowed to see. Projections are pure given the order and a resolver
// for signed asset URLs.
package view

import (
	"context"
	"errors"

	"mymoji-backend/internal/assets"
	"mymoji-backend/internal/models"
)

// ErrRenditionIndex - a download referenced a rendition that does not exist.
var ErrRenditionIndex = errors.New("rendition index out of range")

// PendingFeedbackLabel replaces the nil-feedback sentinel in the artist
// view so artists never see a raw null.
const PendingFeedbackLabel = "Pending feedback"

// URLResolver resolves a stored asset name to a temporary signed URL.
// Satisfied by assets.Client.
type URLResolver interface {
	SignedURL(ctx context.Context, customerID, assetName string) (string, error)
}

// Customer builds the customer-facing view. Customers only see
// renditions still awaiting their input; orders without a rendition get
// the not-ready placeholder, and orders already answered get the
// awaiting-rendition placeholder so no stale feedback form is shown.
func Customer(ctx context.Context, order *models.Order, resolver URLResolver) (*models.CustomerViewResponse, error) {
	resp := &models.CustomerViewResponse{
		CustomerID: order.CustomerID,
		Name:       order.Name,
		Notes:      order.Notes,
		Status:     order.RenditionStatus,
	}

	if order.RenditionStatus == models.StatusPendingFirstRendition {
		resp.NotReady = true
		return resp, nil
	}
	// The latest rendition is already answered: return the bare
	// "feedback submitted, please wait" placeholder with no view data.
	// No image loads, and no stale feedback form to resubmit against.
	if order.RenditionStatus == models.StatusPendingRendition {
		resp.AwaitingRendition = true
		return resp, nil
	}

	mugshotURL, err := resolver.SignedURL(ctx, order.CustomerID, assets.InitialUpload)
	if err != nil {
		return nil, err
	}
	resp.MugshotURL = mugshotURL

	for i, rendition := range order.Renditions {
		if rendition.HasFeedback() {
			continue
		}
		url, err := resolver.SignedURL(ctx, order.CustomerID, rendition.Name)
		if err != nil {
			return nil, err
		}
		// Unanswered by construction, so the feedback slot of the view
		// contract is always empty here.
		resp.Renditions = append(resp.Renditions, models.CustomerRendition{
			URL:             url,
			Feedback:        "",
			RenditionNumber: i,
		})
	}

	return resp, nil
}

// Artist builds the artist-facing view: every rendition with its
// feedback, plus the order metadata the artist works from.
func Artist(ctx context.Context, order *models.Order, resolver URLResolver) (*models.ArtistViewResponse, error) {
	mugshotURL, err := resolver.SignedURL(ctx, order.CustomerID, assets.InitialUpload)
	if err != nil {
		return nil, err
	}

	renditions := make([]models.ArtistRendition, len(order.Renditions))
	for i, rendition := range order.Renditions {
		url, err := resolver.SignedURL(ctx, order.CustomerID, rendition.Name)
		if err != nil {
			return nil, err
		}
		feedback := PendingFeedbackLabel
		if rendition.HasFeedback() {
			feedback = *rendition.Feedback
		}
		renditions[i] = models.ArtistRendition{URL: url, Feedback: feedback}
	}

	return &models.ArtistViewResponse{
		CustomerID: order.CustomerID,
		Name:       order.Name,
		Email:      order.Email,
		Notes:      order.Notes,
		Status:     order.RenditionStatus,
		MugshotURL: mugshotURL,
		Renditions: renditions,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}, nil
}

// Download resolves the signed URL for one rendition by ledger index.
func Download(ctx context.Context, order *models.Order, resolver URLResolver, index int) (string, error) {
	if index < 0 || index >= len(order.Renditions) {
		return "", ErrRenditionIndex
	}
	return resolver.SignedURL(ctx, order.CustomerID, order.Renditions[index].Name)
}

// Mugshot resolves the signed URL for the order's reference photo.
func Mugshot(ctx context.Context, order *models.Order, resolver URLResolver) (string, error) {
	return resolver.SignedURL(ctx, order.CustomerID, assets.InitialUpload)
}
