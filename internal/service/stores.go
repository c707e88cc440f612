package service

import (
	"context"
	"time"

	"facturalo/internal/models"

	"github.com/google/uuid"
)

// ObjectStore is the slice of the blob backend the services need: upload a
// blob, mint a time-limited read URL, fetch bytes, and remove a blob.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// InvoiceStore persists invoice records. There is deliberately no update or
// delete: a published invoice is immutable.
type InvoiceStore interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Invoice, int64, error)
}

// CompanyStore persists the per-account issuer profile.
type CompanyStore interface {
	Upsert(ctx context.Context, company *models.Company) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error)
	UpdateLogoPath(ctx context.Context, userID uuid.UUID, logoPath string) error
}
