package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mymoji-backend/internal/handlers"
	"mymoji-backend/internal/models"
	"mymoji-backend/internal/notify"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/supabase"
)

func feedbackRouter(s store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewFeedbackHandler(s, notify.NewNotifier(notify.Config{}), supabase.NewRealtimeClient(nil))
	router := gin.New()
	router.POST("/api/v1/orders/:customer_id/renditions/:rendition_number/feedback", handler.SubmitFeedback)
	return router
}

func seedOrder(t *testing.T, s store.Store, renditionCount int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &models.Order{
		CustomerID:       "abc",
		Name:             "Ana",
		Email:            "a@x.com",
		PaymentSessionID: "cs_test_123",
	}))
	for i := 0; i < renditionCount; i++ {
		require.NoError(t, s.AppendRendition(ctx, "abc", "rendition_0"))
	}
}

func postFeedback(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitFeedback(t *testing.T) {
	s := store.NewMemory()
	seedOrder(t, s, 1)
	router := feedbackRouter(s)

	w := postFeedback(router, "/api/v1/orders/abc/renditions/0/feedback", `{"feedback":"line1\r\nline2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	order, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, order.Renditions[0].HasFeedback())
	assert.Equal(t, "line1 line2", *order.Renditions[0].Feedback)
	assert.Equal(t, models.StatusPendingRendition, order.RenditionStatus)
}

func TestSubmitFeedbackEmpty(t *testing.T) {
	s := store.NewMemory()
	seedOrder(t, s, 1)
	router := feedbackRouter(s)

	w := postFeedback(router, "/api/v1/orders/abc/renditions/0/feedback", `{"feedback":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	order, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, order.Renditions[0].HasFeedback())
}

func TestSubmitFeedbackUnknownOrder(t *testing.T) {
	router := feedbackRouter(store.NewMemory())

	w := postFeedback(router, "/api/v1/orders/nope/renditions/0/feedback", `{"feedback":"hello"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitFeedbackIndexOutOfRange(t *testing.T) {
	s := store.NewMemory()
	seedOrder(t, s, 2)
	router := feedbackRouter(s)

	w := postFeedback(router, "/api/v1/orders/abc/renditions/5/feedback", `{"feedback":"hello"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitFeedbackBadIndex(t *testing.T) {
	s := store.NewMemory()
	seedOrder(t, s, 1)
	router := feedbackRouter(s)

	w := postFeedback(router, "/api/v1/orders/abc/renditions/zero/feedback", `{"feedback":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
