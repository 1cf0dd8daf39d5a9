package models

import (
	"encoding/json"
	"time"
)

// CheckoutSessionStatus enumerates the lifecycle of a hosted checkout session.
type CheckoutSessionStatus string

const (
	SessionStatusPending   CheckoutSessionStatus = "pending"
	SessionStatusFulfilled CheckoutSessionStatus = "fulfilled"
	SessionStatusExpired   CheckoutSessionStatus = "expired"
	SessionStatusFailed    CheckoutSessionStatus = "failed"
)

// CheckoutSession tracks one cart handed to the payment provider. Entitlement
// activation happens only after the provider confirms payment (webhook or
// reconcile sweep), never from the client redirect.
type CheckoutSession struct {
	ID          int                   `db:"id" json:"-"`
	SessionID   string                `db:"session_id" json:"sessionId"`
	UserID      string                `db:"user_id" json:"-"`
	ModuleIDs   json.RawMessage       `db:"module_ids" json:"moduleIds"` // ordered JSON array, parents first
	AmountTotal int                   `db:"amount_total" json:"amountTotal"`
	Currency    string                `db:"currency" json:"currency"`
	Status      CheckoutSessionStatus `db:"status" json:"status"`
	RedirectURL string                `db:"-" json:"redirectUrl,omitempty"`
	CreatedAt   time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time             `db:"updated_at" json:"-"`
	FulfilledAt *time.Time            `db:"fulfilled_at" json:"fulfilledAt,omitempty"`
}

// Modules decodes the ordered module id list stored with the session.
func (s *CheckoutSession) Modules() ([]string, error) {
	var ids []string
	if err := json.Unmarshal(s.ModuleIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetModules encodes the ordered module id list for storage.
func (s *CheckoutSession) SetModules(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.ModuleIDs = raw
	return nil
}
