package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. It owns at most one company profile and
// any number of customers and invoices.
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
