package models

import (
	"time"

	"facturalo/internal/invoice"

	"github.com/google/uuid"
)

// Company is the account's issuer profile, placed on every invoice it
// produces. At most one exists per account; the invoice pipeline only ever
// reads it.
type Company struct {
	ID        uuid.UUID        `db:"id"`
	UserID    uuid.UUID        `db:"user_id"`
	Name      string           `db:"name"`
	TaxID     string           `db:"tax_id"`
	Address   string           `db:"address"`
	Phone     string           `db:"phone"`
	Email     string           `db:"email"`
	LogoPath  string           `db:"logo_path"`
	Currency  invoice.Currency `db:"currency"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}
