package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/t-ecosystem/market_api/internal/models"
)

// PurchaseRepository handles data access for purchase records.
type PurchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a new purchase row.
func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	const q = `
        INSERT INTO purchases (
            purchase_id, user_id, module_id, module_name, type, status,
            amount, currency, purchase_date, expiry_date, checkout_session_id,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,
            $7,$8,$9,$10,$11,
            NOW(),NOW()
        ) RETURNING id`

	return r.db.QueryRowContext(ctx, q,
		p.PurchaseID, p.UserID, p.ModuleID, p.ModuleName, p.Type, p.Status,
		p.Amount, p.Currency, p.PurchaseDate, p.ExpiryDate, p.CheckoutSessionID,
	).Scan(&p.ID)
}

// ListByUserAndModule returns every purchase row for the (user, module)
// pair regardless of status, newest first.
func (r *PurchaseRepository) ListByUserAndModule(ctx context.Context, userID, moduleID string) ([]models.Purchase, error) {
	const q = `
        SELECT * FROM purchases
        WHERE user_id = $1 AND module_id = $2
        ORDER BY purchase_date DESC`

	var purchases []models.Purchase
	if err := r.db.SelectContext(ctx, &purchases, q, userID, moduleID); err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListActiveByUser returns the user's active purchases, oldest first.
func (r *PurchaseRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	const q = `
        SELECT * FROM purchases
        WHERE user_id = $1 AND status = $2
        ORDER BY purchase_date ASC`

	var purchases []models.Purchase
	if err := r.db.SelectContext(ctx, &purchases, q, userID, models.PurchaseStatusActive); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Reactivate flips an existing purchase back to active and refreshes its
// purchase date. Reinstalling a previously purchased module does not charge
// the user again.
func (r *PurchaseRepository) Reactivate(ctx context.Context, purchaseID string, at time.Time) error {
	const q = `
        UPDATE purchases SET
            status = $2,
            purchase_date = $3,
            updated_at = NOW()
        WHERE purchase_id = $1`

	_, err := r.db.ExecContext(ctx, q, purchaseID, models.PurchaseStatusActive, at)
	return err
}

// DeactivateActive marks every active purchase for the (user, module) pair
// inactive and returns how many rows changed. Zero matching rows is not an
// error: uninstall is idempotent.
func (r *PurchaseRepository) DeactivateActive(ctx context.Context, userID, moduleID string) (int64, error) {
	const q = `
        UPDATE purchases SET
            status = $3,
            updated_at = NOW()
        WHERE user_id = $1 AND module_id = $2 AND status = $4`

	res, err := r.db.ExecContext(ctx, q, userID, moduleID, models.PurchaseStatusInactive, models.PurchaseStatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
