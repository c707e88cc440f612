package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a directory entry used to pre-fill the invoice form. Invoices
// still accept free-form client data that matches no customer record.
type Customer struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
