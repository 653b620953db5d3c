package supabase

import (
	"fmt"
)

// eventsTable receives one row per order lifecycle event. Supabase
// Realtime is subscribed to inserts on this table, so writing a row is
// what broadcasts the event to frontends listening on the order's
// channel (the customer page polls otherwise).
const eventsTable = "order_events"

// RealtimeClient publishes order lifecycle events by appending them to
// the events table through PostgREST.
type RealtimeClient struct {
	client *Client
}

func NewRealtimeClient(client *Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

// PublishEvent appends one event row. A nil client (Supabase not
// configured) makes publishing a no-op.
func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	if r.client == nil {
		return nil
	}

	row := map[string]interface{}{
		"channel": channel,
		"event":   event,
		"payload": payload,
	}
	_, _, err := r.client.Supabase.From(eventsTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}
	return nil
}

func (r *RealtimeClient) PublishOrderEvent(customerID string, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("order:%s", customerID)
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func OrderPaidPayload(customerID string) map[string]interface{} {
	return map[string]interface{}{
		"customer_id": customerID,
		"status":      "pending-first-rendition",
	}
}

func RenditionAddedPayload(customerID, assetName string) map[string]interface{} {
	return map[string]interface{}{
		"customer_id": customerID,
		"status":      "pending-feedback",
		"rendition":   assetName,
	}
}

func FeedbackReceivedPayload(customerID string, renditionNumber int) map[string]interface{} {
	return map[string]interface{}{
		"customer_id":      customerID,
		"rendition_number": renditionNumber,
	}
}

func MugshotReplacedPayload(customerID string) map[string]interface{} {
	// Status is deliberately omitted: an order with no renditions yet
	// stays pending-first-rendition after a replace, everything else
	// moves to pending-rendition. Subscribers refetch the view.
	return map[string]interface{}{
		"customer_id": customerID,
	}
}
