package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type InvoiceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInvoiceRepository(db *pgxpool.Pool, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const invoiceColumns = "id, user_id, invoice_number, client_name, client_email, client_phone, client_address, items, notes, total_amount, pdf_path, created_at, updated_at"

func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("failed to serialize invoice items: %w", err)
	}

	query := squirrel.Insert("invoices").
		Columns("id", "user_id", "invoice_number", "client_name", "client_email", "client_phone",
			"client_address", "items", "notes", "total_amount", "pdf_path", "created_at", "updated_at").
		Values(inv.ID, inv.UserID, inv.InvoiceNumber, inv.ClientName, inv.ClientEmail, inv.ClientPhone,
			inv.ClientAddress, items, inv.Notes, inv.TotalAmount, inv.PDFPath, inv.CreatedAt, inv.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByID loads an invoice scoped to its owner; a row belonging to another
// account is indistinguishable from a missing one.
func (r *InvoiceRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	query := squirrel.Select(invoiceColumns).
		From("invoices").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanInvoice(r.db.QueryRow(ctx, sql, args...))
}

// List returns one page of the account's invoices, newest first, plus the
// exact total count. The search term matches invoice number, client name and
// client email.
func (r *InvoiceRepository) List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Invoice, int64, error) {
	filter := squirrel.And{squirrel.Eq{"user_id": userID}}
	if search != "" {
		pattern := fmt.Sprintf("%%%s%%", search)
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"invoice_number": pattern},
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"client_email": pattern},
		})
	}

	countQuery := squirrel.Select("COUNT(*)").
		From("invoices").
		Where(filter).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := squirrel.Select(invoiceColumns).
		From("invoices").
		Where(filter).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *InvoiceRepository) scanInvoice(row rowScanner) (*models.Invoice, error) {
	var inv models.Invoice
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.InvoiceNumber, &inv.ClientName, &inv.ClientEmail, &inv.ClientPhone,
		&inv.ClientAddress, &items, &inv.Notes, &inv.TotalAmount, &inv.PDFPath, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("failed to decode invoice items: %w", err)
		}
	}
	inv.Items = normalizeItems(inv.Items)

	return &inv, nil
}

func normalizeItems(items []invoice.Item) []invoice.Item {
	if items == nil {
		return []invoice.Item{}
	}
	return items
}
