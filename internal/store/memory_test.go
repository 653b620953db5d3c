package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/store"
)

func newOrder(customerID string) *models.Order {
	return &models.Order{
		CustomerID:       customerID,
		Name:             "Ana",
		Email:            "a@x.com",
		Notes:            "blue background please",
		PaymentSessionID: "cs_test_123",
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	require.NoError(t, s.Create(ctx, newOrder("abc")))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Ana", order.Name)
	assert.Equal(t, "a@x.com", order.Email)
	assert.Equal(t, models.StatusPendingFirstRendition, order.RenditionStatus)
	assert.Empty(t, order.Renditions)
	assert.False(t, order.CreatedAt.IsZero())
	assert.False(t, order.UpdatedAt.IsZero())
}

func TestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	require.NoError(t, s.Create(ctx, newOrder("abc")))
	assert.ErrorIs(t, s.Create(ctx, newOrder("abc")), store.ErrAlreadyExists)
}

func TestGetNotFound(t *testing.T) {
	_, err := store.NewMemory().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAppendRendition(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))

	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, order.Renditions, 1)
	assert.Equal(t, "rendition_0", order.Renditions[0].Name)
	assert.False(t, order.Renditions[0].HasFeedback())
	assert.Equal(t, models.StatusPendingFeedback, order.RenditionStatus)
}

func TestAppendRenditionNotFound(t *testing.T) {
	err := store.NewMemory().AppendRendition(context.Background(), "missing", "rendition_0")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFeedbackRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))

	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))
	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingFeedback, order.RenditionStatus)

	require.NoError(t, s.SetFeedback(ctx, "abc", 0, "too big"))
	order, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingRendition, order.RenditionStatus)
	require.Len(t, order.Renditions, 1)
	require.True(t, order.Renditions[0].HasFeedback())
	assert.Equal(t, "too big", *order.Renditions[0].Feedback)

	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_1"))
	order, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingFeedback, order.RenditionStatus)
	assert.Len(t, order.Renditions, 2)
}

func TestSetFeedbackNormalizesLineBreaks(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))

	require.NoError(t, s.SetFeedback(ctx, "abc", 0, "line1\r\nline2"))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "line1 line2", *order.Renditions[0].Feedback)
}

func TestSetFeedbackIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_1"))

	assert.ErrorIs(t, s.SetFeedback(ctx, "abc", 5, "nope"), store.ErrRenditionIndex)
	assert.ErrorIs(t, s.SetFeedback(ctx, "abc", -1, "nope"), store.ErrRenditionIndex)
}

func TestSetFeedbackNotFound(t *testing.T) {
	err := store.NewMemory().SetFeedback(context.Background(), "missing", 0, "hi")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEarlierFeedbackDoesNotRegressStatus(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_1"))
	require.NoError(t, s.SetFeedback(ctx, "abc", 1, "great"))

	// Revising feedback on an earlier rendition must leave the order
	// pending-rendition: only the last entry drives status.
	require.NoError(t, s.SetFeedback(ctx, "abc", 0, "actually fine"))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingRendition, order.RenditionStatus)
}

func TestClearPendingFeedback(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))
	require.NoError(t, s.SetFeedback(ctx, "abc", 0, "smaller nose"))
	require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_1"))

	require.NoError(t, s.ClearPendingFeedback(ctx, "abc"))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, order.Renditions, 2)
	assert.Equal(t, "smaller nose", *order.Renditions[0].Feedback, "answered renditions stay untouched")
	assert.Equal(t, models.FeedbackSuperseded, *order.Renditions[1].Feedback)
	assert.Equal(t, models.StatusPendingRendition, order.RenditionStatus)
}

func TestClearPendingFeedbackWithoutRenditions(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))

	require.NoError(t, s.ClearPendingFeedback(ctx, "abc"))

	order, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, order.Renditions)
	assert.Equal(t, models.StatusPendingFirstRendition, order.RenditionStatus)
}

func TestClearPendingFeedbackNotFound(t *testing.T) {
	err := store.NewMemory().ClearPendingFeedback(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTouch(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))

	before, err := s.Get(ctx, "abc")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Touch(ctx, "abc"))

	after, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Renditions, after.Renditions)

	assert.ErrorIs(t, s.Touch(ctx, "missing"), store.ErrNotFound)
}

// Status must stay a pure function of the ledger for every reachable
// history.
func TestStatusAlwaysDerivedFromLedger(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Create(ctx, newOrder("abc")))

	steps := []func() error{
		func() error { return s.AppendRendition(ctx, "abc", "rendition_0") },
		func() error { return s.SetFeedback(ctx, "abc", 0, "too big") },
		func() error { return s.AppendRendition(ctx, "abc", "rendition_1") },
		func() error { return s.ClearPendingFeedback(ctx, "abc") },
		func() error { return s.AppendRendition(ctx, "abc", "rendition_2") },
		func() error { return s.SetFeedback(ctx, "abc", 0, "revised") },
		func() error { return s.SetFeedback(ctx, "abc", 2, "perfect") },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		order, err := s.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, models.DeriveStatus(order.Renditions), order.RenditionStatus, "step %d", i)
	}
}
