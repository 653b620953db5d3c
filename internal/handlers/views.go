package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/view"
)

type ViewsHandler struct {
	store    store.Store
	resolver view.URLResolver
}

func NewViewsHandler(s store.Store, resolver view.URLResolver) *ViewsHandler {
	return &ViewsHandler{
		store:    s,
		resolver: resolver,
	}
}

// getOrder loads the order or writes the generic not-found response.
// View reads degrade to a plain 404 rather than leaking store errors.
func (h *ViewsHandler) getOrder(c *gin.Context) (*models.Order, bool) {
	order, err := h.store.Get(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Warning: failed to load order %s: %v", c.Param("customer_id"), err)
		}
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return nil, false
	}
	return order, true
}

// CustomerView godoc
// @Summary     Customer view of an order
// @Description Returns the reference photo plus the renditions still awaiting the customer's feedback. While the first rendition is pending a not-ready placeholder is returned; after feedback is submitted an awaiting-rendition placeholder is returned instead of the full view.
// @Tags        views
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Success     200 {object} models.CustomerViewResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/customer-view [get]
func (h *ViewsHandler) CustomerView(c *gin.Context) {
	order, ok := h.getOrder(c)
	if !ok {
		return
	}

	resp, err := view.Customer(c.Request.Context(), order, h.resolver)
	if err != nil {
		log.Printf("Warning: failed to build customer view for %s: %v", order.CustomerID, err)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArtistView godoc
// @Summary     Artist view of an order
// @Description Returns the reference photo and every rendition with its feedback, labeling unanswered renditions "Pending feedback".
// @Tags        views
// @Produce     json
// @Security    Bearer
// @Param       customer_id path string true "Order identifier"
// @Success     200 {object} models.ArtistViewResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/artist-view [get]
func (h *ViewsHandler) ArtistView(c *gin.Context) {
	order, ok := h.getOrder(c)
	if !ok {
		return
	}

	resp, err := view.Artist(c.Request.Context(), order, h.resolver)
	if err != nil {
		log.Printf("Warning: failed to build artist view for %s: %v", order.CustomerID, err)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Download godoc
// @Summary     Download one rendition
// @Description Returns a temporary signed URL for a rendition by its ledger index.
// @Tags        views
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Param       rendition_number path int true "0-based rendition index"
// @Success     200 {object} models.DownloadResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/download/{rendition_number} [get]
func (h *ViewsHandler) Download(c *gin.Context) {
	order, ok := h.getOrder(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("rendition_number"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rendition not found"})
		return
	}

	url, err := view.Download(c.Request.Context(), order, h.resolver, index)
	if err != nil {
		if !errors.Is(err, view.ErrRenditionIndex) {
			log.Printf("Warning: failed to resolve download for %s: %v", order.CustomerID, err)
		}
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rendition not found"})
		return
	}
	c.JSON(http.StatusOK, models.DownloadResponse{DownloadURL: url})
}

// FeedbackView godoc
// @Summary     Data for the feedback form
// @Description Returns the signed URL of one rendition together with the identifiers the feedback form posts back.
// @Tags        views
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Param       rendition_number path int true "0-based rendition index"
// @Success     200 {object} models.FeedbackViewResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/feedback-view/{rendition_number} [get]
func (h *ViewsHandler) FeedbackView(c *gin.Context) {
	order, ok := h.getOrder(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("rendition_number"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rendition not found"})
		return
	}

	url, err := view.Download(c.Request.Context(), order, h.resolver, index)
	if err != nil {
		if !errors.Is(err, view.ErrRenditionIndex) {
			log.Printf("Warning: failed to resolve rendition for %s: %v", order.CustomerID, err)
		}
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rendition not found"})
		return
	}
	c.JSON(http.StatusOK, models.FeedbackViewResponse{
		CustomerID:      order.CustomerID,
		RenditionNumber: index,
		RenditionURL:    url,
	})
}

// Mugshot godoc
// @Summary     Current reference photo
// @Description Returns a signed URL for the order's reference photo, shown before the customer uploads a replacement.
// @Tags        views
// @Produce     json
// @Param       customer_id path string true "Order identifier"
// @Success     200 {object} models.MugshotResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{customer_id}/mugshot [get]
func (h *ViewsHandler) Mugshot(c *gin.Context) {
	order, ok := h.getOrder(c)
	if !ok {
		return
	}

	url, err := view.Mugshot(c.Request.Context(), order, h.resolver)
	if err != nil {
		log.Printf("Warning: failed to resolve mugshot for %s: %v", order.CustomerID, err)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	c.JSON(http.StatusOK, models.MugshotResponse{
		CustomerID: order.CustomerID,
		MugshotURL: url,
	})
}
