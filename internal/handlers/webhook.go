package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/notify"
	"mymoji-backend/internal/payments"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/supabase"
)

type WebhookHandler struct {
	store          store.Store
	paymentsClient *payments.Client
	notifier       *notify.Notifier
	realtimeClient *supabase.RealtimeClient
}

func NewWebhookHandler(s store.Store, paymentsClient *payments.Client, notifier *notify.Notifier, realtimeClient *supabase.RealtimeClient) *WebhookHandler {
	return &WebhookHandler{
		store:          s,
		paymentsClient: paymentsClient,
		notifier:       notifier,
		realtimeClient: realtimeClient,
	}
}

// HandleWebhook godoc
// @Summary     Stripe webhook endpoint
// @Description Receives checkout.session.completed events from Stripe. Verifies the signature, then announces the paid order to the artists and emails the customer their confirmation.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Stripe-Signature header string true "Stripe signature header"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Router      /webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	event, err := h.paymentsClient.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "webhook signature verification failed",
			Message: err.Error(),
		})
		return
	}

	completed, matched, err := payments.ParseCheckoutCompleted(event)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}
	if !matched {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	log.Printf("Payment received for order %s", completed.CustomerID)

	// The order row was written at checkout time; the payment event only
	// refreshes updated_at. Stripe may retry this webhook, so a missing
	// order is logged, not failed.
	if err := h.store.Touch(c.Request.Context(), completed.CustomerID); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Warning: failed to touch order %s: %v", completed.CustomerID, err)
	}

	h.notifier.OrderPaid(completed.CustomerID, completed.Name, completed.Email)
	if err := h.realtimeClient.PublishOrderEvent(completed.CustomerID, "order_paid",
		supabase.OrderPaidPayload(completed.CustomerID)); err != nil {
		log.Printf("Warning: failed to publish order_paid event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
