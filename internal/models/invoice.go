package models

import (
	"time"

	"facturalo/internal/invoice"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the persisted invoice record. It is created exactly once when
// the user confirms a publish and is immutable afterwards; there are no update
// or delete flows. The row is the source of truth for the invoice's existence,
// the PDF blob referenced by PDFPath is derived state.
type Invoice struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	InvoiceNumber string          `db:"invoice_number"`
	ClientName    string          `db:"client_name"`
	ClientEmail   string          `db:"client_email"`
	ClientPhone   string          `db:"client_phone"`
	ClientAddress string          `db:"client_address"`
	Items         []invoice.Item  `db:"items"`
	Notes         string          `db:"notes"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PDFPath       string          `db:"pdf_path"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
