package view_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/view"
)

type fakeResolver struct{}

func (fakeResolver) SignedURL(_ context.Context, customerID, assetName string) (string, error) {
	return fmt.Sprintf("https://signed.example/%s/%s.png", customerID, assetName), nil
}

func strPtr(s string) *string { return &s }

func testOrder(renditions []models.Rendition) *models.Order {
	return &models.Order{
		CustomerID:      "abc",
		Name:            "Ana",
		Email:           "a@x.com",
		Notes:           "blue background",
		RenditionStatus: models.DeriveStatus(renditions),
		Renditions:      renditions,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestCustomerViewNotReady(t *testing.T) {
	resp, err := view.Customer(context.Background(), testOrder(nil), fakeResolver{})
	require.NoError(t, err)
	assert.True(t, resp.NotReady)
	assert.Empty(t, resp.MugshotURL, "no image URLs are resolved before the first rendition")
	assert.Empty(t, resp.Renditions)
}

func TestCustomerViewShowsOnlyUnansweredRenditions(t *testing.T) {
	// The customer skipped rendition 0; both unanswered entries stay
	// visible while the latest one is awaiting feedback.
	order := testOrder([]models.Rendition{
		{Name: "rendition_0"},
		{Name: "rendition_1"},
	})

	resp, err := view.Customer(context.Background(), order, fakeResolver{})
	require.NoError(t, err)
	require.Len(t, resp.Renditions, 2)
	assert.Equal(t, 0, resp.Renditions[0].RenditionNumber)
	assert.Equal(t, "https://signed.example/abc/rendition_0.png", resp.Renditions[0].URL)
	assert.Equal(t, "", resp.Renditions[0].Feedback)
	assert.Equal(t, "https://signed.example/abc/initial-upload.png", resp.MugshotURL)
}

func TestCustomerViewAwaitingRenditionIsPlaceholderOnly(t *testing.T) {
	// Once the latest rendition is answered the customer gets the bare
	// "please wait" response: no mugshot URL, no rendition list, even if
	// earlier renditions were never answered.
	order := testOrder([]models.Rendition{
		{Name: "rendition_0"},
		{Name: "rendition_1", Feedback: strPtr("great")},
	})

	resp, err := view.Customer(context.Background(), order, fakeResolver{})
	require.NoError(t, err)
	assert.True(t, resp.AwaitingRendition)
	assert.Equal(t, models.StatusPendingRendition, resp.Status)
	assert.Empty(t, resp.MugshotURL)
	assert.Empty(t, resp.Renditions)
}

func TestCustomerViewPendingFeedback(t *testing.T) {
	order := testOrder([]models.Rendition{
		{Name: "rendition_0", Feedback: strPtr("too big")},
		{Name: "rendition_1"},
	})

	resp, err := view.Customer(context.Background(), order, fakeResolver{})
	require.NoError(t, err)
	assert.False(t, resp.NotReady)
	assert.False(t, resp.AwaitingRendition)
	require.Len(t, resp.Renditions, 1)
	assert.Equal(t, 1, resp.Renditions[0].RenditionNumber)
}

func TestArtistViewShowsEverything(t *testing.T) {
	order := testOrder([]models.Rendition{
		{Name: "rendition_0"},
		{Name: "rendition_1", Feedback: strPtr("great")},
	})

	resp, err := view.Artist(context.Background(), order, fakeResolver{})
	require.NoError(t, err)
	require.Len(t, resp.Renditions, 2)
	assert.Equal(t, view.PendingFeedbackLabel, resp.Renditions[0].Feedback)
	assert.Equal(t, "great", resp.Renditions[1].Feedback)
	assert.Equal(t, "https://signed.example/abc/initial-upload.png", resp.MugshotURL)
	assert.Equal(t, "a@x.com", resp.Email)
}

func TestDownload(t *testing.T) {
	order := testOrder([]models.Rendition{
		{Name: "rendition_0", Feedback: strPtr("too big")},
		{Name: "rendition_1"},
	})

	url, err := view.Download(context.Background(), order, fakeResolver{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/abc/rendition_1.png", url)

	_, err = view.Download(context.Background(), order, fakeResolver{}, 5)
	assert.ErrorIs(t, err, view.ErrRenditionIndex)
	_, err = view.Download(context.Background(), order, fakeResolver{}, -1)
	assert.ErrorIs(t, err, view.ErrRenditionIndex)
}

func TestMugshot(t *testing.T) {
	url, err := view.Mugshot(context.Background(), testOrder(nil), fakeResolver{})
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/abc/initial-upload.png", url)
}
