package store

import (
	"context"
	"sync"
	"time"

	"mymoji-backend/internal/models"
)

// Memory is an in-process Store with the same patch semantics as
// Postgres. The server falls back to it when DATABASE_URL is not set,
// and the tests run against it.
type Memory struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func NewMemory() *Memory {
	return &Memory{orders: make(map[string]*models.Order)}
}

func (m *Memory) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[order.CustomerID]; ok {
		return ErrAlreadyExists
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Renditions == nil {
		order.Renditions = []models.Rendition{}
	}
	order.RenditionStatus = models.DeriveStatus(order.Renditions)

	m.orders[order.CustomerID] = cloneOrder(order)
	return nil
}

func (m *Memory) Get(_ context.Context, customerID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[customerID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (m *Memory) AppendRendition(_ context.Context, customerID, assetName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[customerID]
	if !ok {
		return ErrNotFound
	}

	order.Renditions = append(order.Renditions, models.Rendition{Name: assetName})
	order.RenditionStatus = models.DeriveStatus(order.Renditions)
	order.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) SetFeedback(_ context.Context, customerID string, index int, feedback string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[customerID]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(order.Renditions) {
		return ErrRenditionIndex
	}

	normalized := models.NormalizeFeedback(feedback)
	order.Renditions[index].Feedback = &normalized
	order.RenditionStatus = models.DeriveStatus(order.Renditions)
	order.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) ClearPendingFeedback(_ context.Context, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[customerID]
	if !ok {
		return ErrNotFound
	}

	for i := range order.Renditions {
		if !order.Renditions[i].HasFeedback() {
			superseded := models.FeedbackSuperseded
			order.Renditions[i].Feedback = &superseded
		}
	}
	order.RenditionStatus = models.DeriveStatus(order.Renditions)
	order.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) Touch(_ context.Context, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[customerID]
	if !ok {
		return ErrNotFound
	}

	order.UpdatedAt = time.Now()
	return nil
}

func cloneOrder(order *models.Order) *models.Order {
	clone := *order
	clone.Renditions = make([]models.Rendition, len(order.Renditions))
	for i, r := range order.Renditions {
		clone.Renditions[i] = r
		if r.Feedback != nil {
			feedback := *r.Feedback
			clone.Renditions[i].Feedback = &feedback
		}
	}
	return &clone
}
