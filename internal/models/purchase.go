package models

import "time"

// PurchaseType distinguishes recurring app subscriptions from one-time
// add-on/integration purchases.
type PurchaseType string

const (
	PurchaseTypeOneTime      PurchaseType = "one-time"
	PurchaseTypeSubscription PurchaseType = "subscription"
)

// PurchaseStatus enumerates the lifecycle states of a purchase record.
type PurchaseStatus string

const (
	PurchaseStatusActive    PurchaseStatus = "active"
	PurchaseStatusInactive  PurchaseStatus = "inactive"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
	PurchaseStatusExpired   PurchaseStatus = "expired"
)

// Purchase is the durable record of a commercial transaction. Entitlement
// state is a materialized view over purchases with status == active.
// Uninstalling flips status to inactive instead of deleting the row so the
// purchase history survives and reinstalls are free.
type Purchase struct {
	ID                int            `db:"id" json:"-"`
	PurchaseID        string         `db:"purchase_id" json:"purchaseId"`
	UserID            string         `db:"user_id" json:"-"`
	ModuleID          string         `db:"module_id" json:"moduleId"`
	ModuleName        string         `db:"module_name" json:"moduleName"`
	Type              PurchaseType   `db:"type" json:"type"`
	Status            PurchaseStatus `db:"status" json:"status"`
	Amount            int            `db:"amount" json:"amount"`
	Currency          string         `db:"currency" json:"currency"`
	PurchaseDate      time.Time      `db:"purchase_date" json:"purchaseDate"`
	ExpiryDate        *time.Time     `db:"expiry_date" json:"expiryDate,omitempty"`
	CheckoutSessionID *string        `db:"checkout_session_id" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"-"`
	UpdatedAt         time.Time      `db:"updated_at" json:"-"`
}

// InstalledModuleStatus enumerates projection entry states.
type InstalledModuleStatus string

const (
	InstalledStatusActive   InstalledModuleStatus = "active"
	InstalledStatusExpired  InstalledModuleStatus = "expired"
	InstalledStatusDisabled InstalledModuleStatus = "disabled"
)

// InstalledModule is one entry of the per-user entitlement projection,
// derived from active purchases. At most one entry exists per module id.
type InstalledModule struct {
	ModuleID    string                `json:"moduleId"`
	InstalledAt time.Time             `json:"installedAt"`
	Status      InstalledModuleStatus `json:"status"`
	AutoRenew   bool                  `json:"autoRenew"`
}
