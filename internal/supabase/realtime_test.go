package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mymoji-backend/internal/supabase"
)

func TestPublishOrderEventWithoutClient(t *testing.T) {
	r := supabase.NewRealtimeClient(nil)

	err := r.PublishOrderEvent("abc", "order_paid", supabase.OrderPaidPayload("abc"))
	assert.NoError(t, err)
}

func TestEventPayloads(t *testing.T) {
	paid := supabase.OrderPaidPayload("abc")
	assert.Equal(t, "abc", paid["customer_id"])
	assert.Equal(t, "pending-first-rendition", paid["status"])

	added := supabase.RenditionAddedPayload("abc", "rendition_2")
	assert.Equal(t, "rendition_2", added["rendition"])
	assert.Equal(t, "pending-feedback", added["status"])

	feedback := supabase.FeedbackReceivedPayload("abc", 1)
	assert.Equal(t, 1, feedback["rendition_number"])

	// No status claim: a replace on an order with an empty ledger keeps
	// pending-first-rendition, so subscribers refetch instead.
	replaced := supabase.MugshotReplacedPayload("abc")
	assert.NotContains(t, replaced, "status")
	assert.Equal(t, "abc", replaced["customer_id"])
}
