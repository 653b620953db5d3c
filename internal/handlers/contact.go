package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/models"
	"mymoji-backend/internal/notify"
)

type ContactHandler struct {
	notifier *notify.Notifier
}

func NewContactHandler(notifier *notify.Notifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

// Contact godoc
// @Summary     Contact support
// @Description Forwards a message from the contact form to the support inbox.
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       request body models.ContactRequest true "Message"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Router      /contact [post]
func (h *ContactHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "message text is required"})
		return
	}

	h.notifier.ContactMessage(req.Text)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
