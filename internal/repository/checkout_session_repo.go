package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/t-ecosystem/market_api/internal/models"
)

// CheckoutSessionRepository handles data access for checkout sessions.
type CheckoutSessionRepository struct {
	db *sqlx.DB
}

// NewCheckoutSessionRepository creates a new CheckoutSessionRepository.
func NewCheckoutSessionRepository(db *sqlx.DB) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

// Create inserts a new checkout session row.
func (r *CheckoutSessionRepository) Create(ctx context.Context, s *models.CheckoutSession) error {
	const q = `
        INSERT INTO checkout_sessions (
            session_id, user_id, module_ids, amount_total, currency, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
        RETURNING id`

	return r.db.QueryRowContext(ctx, q,
		s.SessionID, s.UserID, s.ModuleIDs, s.AmountTotal, s.Currency, s.Status,
	).Scan(&s.ID)
}

// GetBySessionID returns the session with the given provider session id.
func (r *CheckoutSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	const q = `SELECT * FROM checkout_sessions WHERE session_id = $1`

	var s models.CheckoutSession
	if err := r.db.GetContext(ctx, &s, q, sessionID); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStalePending returns pending sessions created before the cutoff,
// oldest first. These are candidates for reconciliation against the
// provider: the user paid but the webhook never landed, or abandoned the
// checkout entirely.
func (r *CheckoutSessionRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]models.CheckoutSession, error) {
	const q = `
        SELECT * FROM checkout_sessions
        WHERE status = $1 AND created_at < $2
        ORDER BY created_at ASC`

	var sessions []models.CheckoutSession
	if err := r.db.SelectContext(ctx, &sessions, q, models.SessionStatusPending, cutoff); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateStatus transitions a session to the given status. Fulfilled sessions
// also record the fulfillment time.
func (r *CheckoutSessionRepository) UpdateStatus(ctx context.Context, sessionID string, status models.CheckoutSessionStatus) error {
	const q = `
        UPDATE checkout_sessions SET
            status = $2,
            fulfilled_at = CASE WHEN $2 = 'fulfilled' THEN NOW() ELSE fulfilled_at END,
            updated_at = NOW()
        WHERE session_id = $1`

	_, err := r.db.ExecContext(ctx, q, sessionID, status)
	return err
}
