package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/notify"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/supabase"
)

type FeedbackHandler struct {
	store          store.Store
	notifier       *notify.Notifier
	realtimeClient *supabase.RealtimeClient
}

func NewFeedbackHandler(s store.Store, notifier *notify.Notifier, realtimeClient *supabase.RealtimeClient) *FeedbackHandler {
	return &FeedbackHandler{
		store:          s,
		notifier:       notifier,
		realtimeClient: realtimeClient,
	}
}

// SubmitFeedback godoc
// @Summary     Submit feedback for a rendition
// @Description Records the customer's feedback against one rendition. Feedback on the latest rendition moves the order to pending-rendition; earlier indices can be revised without changing status.
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Param       rendition_number path int true "0-based rendition index"
// @Param       request body models.FeedbackRequest true "Feedback text"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/renditions/{rendition_number}/feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	customerID := c.Param("customer_id")

	renditionNumber, err := strconv.Atoi(c.Param("rendition_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid rendition number"})
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Feedback) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "feedback must not be empty"})
		return
	}

	if err := h.store.SetFeedback(c.Request.Context(), customerID, renditionNumber, req.Feedback); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		case errors.Is(err, store.ErrRenditionIndex):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rendition not found"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to record feedback",
				Message: err.Error(),
			})
		}
		return
	}

	// Notification is best-effort; the feedback is already durable.
	order, err := h.store.Get(c.Request.Context(), customerID)
	if err != nil {
		log.Printf("Warning: failed to reload order %s for notification: %v", customerID, err)
	} else {
		h.notifier.FeedbackReceived(customerID, order.Name, order.Email, models.NormalizeFeedback(req.Feedback))
	}
	if err := h.realtimeClient.PublishOrderEvent(customerID, "feedback_received",
		supabase.FeedbackReceivedPayload(customerID, renditionNumber)); err != nil {
		log.Printf("Warning: failed to publish feedback_received event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
