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

type RenditionsHandler struct {
	store          store.Store
	assetsClient   *assets.Client
	notifier       *notify.Notifier
	realtimeClient *supabase.RealtimeClient
}

func NewRenditionsHandler(s store.Store, assetsClient *assets.Client, notifier *notify.Notifier, realtimeClient *supabase.RealtimeClient) *RenditionsHandler {
	return &RenditionsHandler{
		store:          s,
		assetsClient:   assetsClient,
		notifier:       notifier,
		realtimeClient: realtimeClient,
	}
}

// UploadRendition godoc
// @Summary     Upload a new rendition
// @Description Stores an artist's draft image against the order, appends it to the rendition ledger (moving the order to pending-feedback), and emails the customer.
// @Tags        renditions
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       customer_id path string true "Order identifier"
// @Param       upload formData file true "Rendition image"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/renditions [post]
func (h *RenditionsHandler) UploadRendition(c *gin.Context) {
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
			Error:   "missing rendition image",
			Message: err.Error(),
		})
		return
	}

	// Rendition assets are numbered by ledger position.
	assetName := assets.RenditionAssetName(len(order.Renditions))
	if err := h.assetsClient.Upload(c.Request.Context(), customerID, assetName, image); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store rendition image",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.AppendRendition(c.Request.Context(), customerID, assetName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to record rendition",
			Message: err.Error(),
		})
		return
	}

	h.notifier.RenditionReady(customerID, order.Name, order.Email)
	if err := h.realtimeClient.PublishOrderEvent(customerID, "rendition_added",
		supabase.RenditionAddedPayload(customerID, assetName)); err != nil {
		log.Printf("Warning: failed to publish rendition_added event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
