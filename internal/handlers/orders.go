package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mymoji-backend/internal/assets"
	"mymoji-backend/internal/models"
	"mymoji-backend/internal/payments"
	"mymoji-backend/internal/store"
)

type OrdersHandler struct {
	store          store.Store
	assetsClient   *assets.Client
	paymentsClient *payments.Client
}

func NewOrdersHandler(s store.Store, assetsClient *assets.Client, paymentsClient *payments.Client) *OrdersHandler {
	return &OrdersHandler{
		store:          s,
		assetsClient:   assetsClient,
		paymentsClient: paymentsClient,
	}
}

// CreateOrder godoc
// @Summary     Create a new order
// @Description Creates a Stripe Checkout session for a new MyMoji order, stores the customer's reference photo, and inserts the order record. Returns the session id for the payment redirect.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       name formData string true "Customer name"
// @Param       email formData string true "Customer email"
// @Param       notes formData string false "Notes for the artist"
// @Param       upload formData file true "Reference photo (mugshot)"
// @Success     200 {object} models.OrderCreatedResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	notes := c.PostForm("notes")
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name and email are required"})
		return
	}

	mugshot, err := readUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing reference photo",
			Message: err.Error(),
		})
		return
	}

	customerID := uuid.New().String()

	session, err := h.paymentsClient.CreateCheckoutSession(c.Request.Context(), customerID, name, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create checkout session",
			Message: err.Error(),
		})
		return
	}

	if err := h.assetsClient.Upload(c.Request.Context(), customerID, assets.InitialUpload, mugshot); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store reference photo",
			Message: err.Error(),
		})
		return
	}

	order := &models.Order{
		CustomerID:       customerID,
		Name:             name,
		Email:            email,
		Notes:            notes,
		PaymentSessionID: session.ID,
	}
	if err := h.store.Create(c.Request.Context(), order); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "order already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.OrderCreatedResponse{
		SessionID:  session.ID,
		CustomerID: customerID,
	})
}
