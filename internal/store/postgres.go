package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mymoji-backend/internal/models"
)

// Postgres stores orders in a single table with the rendition ledger in
// a JSONB column. Every patch is one UPDATE statement that rewrites the
// ledger and recomputes rendition_status together, relying on row-level
// atomicity instead of application locking.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Create(ctx context.Context, order *models.Order) error {
	order.RenditionStatus = models.DeriveStatus(order.Renditions)
	renditionsJSON, err := json.Marshal(order.Renditions)
	if err != nil {
		return fmt.Errorf("failed to marshal renditions: %w", err)
	}
	if order.Renditions == nil {
		renditionsJSON = []byte("[]")
	}

	err = p.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, name, email, notes, payment_session_id, rendition_status, renditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, order.CustomerID, order.Name, order.Email, order.Notes,
		order.PaymentSessionID, order.RenditionStatus, renditionsJSON,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (p *Postgres) Get(ctx context.Context, customerID string) (*models.Order, error) {
	var order models.Order
	var renditionsJSON []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT customer_id, name, email, notes, payment_session_id, rendition_status, renditions, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
	`, customerID).Scan(
		&order.CustomerID, &order.Name, &order.Email, &order.Notes,
		&order.PaymentSessionID, &order.RenditionStatus, &renditionsJSON,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := json.Unmarshal(renditionsJSON, &order.Renditions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal renditions: %w", err)
	}
	if order.Renditions == nil {
		order.Renditions = []models.Rendition{}
	}

	return &order, nil
}

func (p *Postgres) AppendRendition(ctx context.Context, customerID, assetName string) error {
	// A freshly appended rendition has no feedback, so the derived
	// status after this patch is always pending-feedback.
	result, err := p.db.ExecContext(ctx, `
		UPDATE orders
		SET renditions = renditions || jsonb_build_array(jsonb_build_object('name', $2::text, 'feedback', NULL)),
		    rendition_status = $3,
		    updated_at = NOW()
		WHERE customer_id = $1
	`, customerID, assetName, models.StatusPendingFeedback)
	if err != nil {
		return fmt.Errorf("failed to append rendition: %w", err)
	}

	return p.checkUpdated(result)
}

func (p *Postgres) SetFeedback(ctx context.Context, customerID string, index int, feedback string) error {
	feedback = models.NormalizeFeedback(feedback)

	// Status only depends on the last rendition: the patched index
	// changes it when it IS the last one, otherwise the last entry's
	// existing feedback decides.
	result, err := p.db.ExecContext(ctx, `
		UPDATE orders
		SET renditions = jsonb_set(renditions, ARRAY[($2::int)::text, 'feedback'], to_jsonb($3::text)),
		    rendition_status = CASE
		        WHEN $2::int = jsonb_array_length(renditions) - 1
		             OR renditions -> (jsonb_array_length(renditions) - 1) ->> 'feedback' IS NOT NULL
		        THEN $4
		        ELSE $5
		    END,
		    updated_at = NOW()
		WHERE customer_id = $1
		  AND $2::int >= 0
		  AND $2::int < jsonb_array_length(renditions)
	`, customerID, index, feedback, models.StatusPendingRendition, models.StatusPendingFeedback)
	if err != nil {
		return fmt.Errorf("failed to set feedback: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		// Distinguish a missing order from a bad index. The probe is
		// read-only, so racing it is harmless.
		var exists bool
		if err := p.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)`, customerID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if exists {
			return ErrRenditionIndex
		}
		return ErrNotFound
	}

	return nil
}

func (p *Postgres) ClearPendingFeedback(ctx context.Context, customerID string) error {
	// Rewrites the whole ledger in place, stamping the superseded
	// sentinel on every unanswered rendition. Answered renditions are
	// untouched. With at least one rendition the last entry ends up
	// answered, so the derived status is pending-rendition; an order
	// that never had a rendition stays pending-first-rendition.
	result, err := p.db.ExecContext(ctx, `
		UPDATE orders
		SET renditions = (
		        SELECT COALESCE(jsonb_agg(
		            CASE WHEN elem ->> 'feedback' IS NULL
		                 THEN jsonb_set(elem, '{feedback}', to_jsonb($2::text))
		                 ELSE elem
		            END ORDER BY idx), '[]'::jsonb)
		        FROM jsonb_array_elements(renditions) WITH ORDINALITY AS t(elem, idx)
		    ),
		    rendition_status = CASE
		        WHEN jsonb_array_length(renditions) = 0 THEN $3
		        ELSE $4
		    END,
		    updated_at = NOW()
		WHERE customer_id = $1
	`, customerID, models.FeedbackSuperseded,
		models.StatusPendingFirstRendition, models.StatusPendingRendition)
	if err != nil {
		return fmt.Errorf("failed to clear pending feedback: %w", err)
	}

	return p.checkUpdated(result)
}

func (p *Postgres) Touch(ctx context.Context, customerID string) error {
	result, err := p.db.ExecContext(ctx, `
		UPDATE orders
		SET updated_at = NOW()
		WHERE customer_id = $1
	`, customerID)
	if err != nil {
		return fmt.Errorf("failed to touch order: %w", err)
	}

	return p.checkUpdated(result)
}

func (p *Postgres) checkUpdated(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
