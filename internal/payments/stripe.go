// Package payments wraps Stripe Checkout. The core never talks to
// Stripe directly; it creates a session at order time and verifies the
// completion webhook, nothing else.
package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

type Client struct {
	api           *client.API
	priceID       string
	methodTypes   []string
	webhookSecret string
	domain        string
}

func NewClient(secretKey, webhookSecret, priceID, domain string, methodTypes []string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	if len(methodTypes) == 0 {
		methodTypes = []string{"card"}
	}

	return &Client{
		api:           api,
		priceID:       priceID,
		methodTypes:   methodTypes,
		webhookSecret: webhookSecret,
		domain:        domain,
	}
}

// CreateCheckoutSession opens a Stripe Checkout session for one MyMoji.
// The customer id rides along as client_reference_id and in the session
// metadata so the completion webhook can be matched back to the order.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID, name, email string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		ClientReferenceID:  stripe.String(customerID),
		CustomerEmail:      stripe.String(email),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice(c.methodTypes),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		AllowPromotionCodes: stripe.Bool(true),
		SuccessURL:          stripe.String(c.domain + "/successfulOrder/" + customerID),
		CancelURL:           stripe.String(c.domain + "/newOrder"),
	}
	params.AddMetadata("name", name)
	params.AddMetadata("email", email)
	params.AddMetadata("uuid", customerID)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session, nil
}

// VerifyWebhook checks the Stripe signature and parses the event.
func (c *Client) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}

// CheckoutCompleted is the order-relevant slice of a
// checkout.session.completed event.
type CheckoutCompleted struct {
	CustomerID string
	Name       string
	Email      string
}

// ParseCheckoutCompleted extracts the order metadata from a
// checkout.session.completed event. Returns false for any other event type.
func ParseCheckoutCompleted(event stripe.Event) (*CheckoutCompleted, bool, error) {
	if event.Type != "checkout.session.completed" {
		return nil, false, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, true, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	return &CheckoutCompleted{
		CustomerID: session.Metadata["uuid"],
		Name:       session.Metadata["name"],
		Email:      session.Metadata["email"],
	}, true, nil
}
