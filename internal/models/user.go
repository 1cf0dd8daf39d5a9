package models

import "time"

// User is a storefront account. The rest of the system only depends on the
// opaque ID; profile fields exist for display purposes.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"displayName"`
	PhotoURL     *string   `db:"photo_url" json:"photoURL,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
