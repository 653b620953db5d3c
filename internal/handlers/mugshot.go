package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/assets"
	"mymoji-backend/internal/models"
	"mymoji-backend/internal/notify"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/supabase"
)

type MugshotHandler struct {
	store          store.Store
	assetsClient   *assets.Client
	notifier       *notify.Notifier
	realtimeClient *supabase.RealtimeClient
}

func NewMugshotHandler(s store.Store, assetsClient *assets.Client, notifier *notify.Notifier, realtimeClient *supabase.RealtimeClient) *MugshotHandler {
	return &MugshotHandler{
		store:          s,
		assetsClient:   assetsClient,
		notifier:       notifier,
		realtimeClient: realtimeClient,
	}
}

// ReplaceMugshot godoc
// @Summary     Replace the reference photo
// @Description Overwrites the order's reference photo. Every rendition still awaiting feedback is marked superseded, and the artist owes a new rendition against the new photo.
// @Tags        mugshot
// @Accept      multipart/form-data
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Param       upload formData file true "New reference photo"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/mugshot [post]
func (h *MugshotHandler) ReplaceMugshot(c *gin.Context) {
	customerID := c.Param("customer_id")

	order, err := h.store.Get(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get order",
			Message: err.Error(),
		})
		return
	}

	image, err := readUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing reference photo",
			Message: err.Error(),
		})
		return
	}

	if err := h.assetsClient.Upload(c.Request.Context(), customerID, assets.InitialUpload, image); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store reference photo",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.ClearPendingFeedback(c.Request.Context(), customerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update order",
			Message: err.Error(),
		})
		return
	}

	h.notifier.MugshotReplaced(customerID, order.Name, order.Email)
	if err := h.realtimeClient.PublishOrderEvent(customerID, "mugshot_replaced",
		supabase.MugshotReplacedPayload(customerID)); err != nil {
		log.Printf("Warning: failed to publish mugshot_replaced event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
