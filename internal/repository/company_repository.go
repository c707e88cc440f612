package repository

import (
	"context"

	"facturalo/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CompanyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCompanyRepository(db *pgxpool.Pool, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or replaces the account's company profile. The unique
// constraint on user_id enforces at most one profile per account.
func (r *CompanyRepository) Upsert(ctx context.Context, company *models.Company) error {
	query := squirrel.Insert("companies").
		Columns("id", "user_id", "name", "tax_id", "address", "phone", "email", "logo_path", "currency", "created_at", "updated_at").
		Values(company.ID, company.UserID, company.Name, company.TaxID, company.Address, company.Phone,
			company.Email, company.LogoPath, company.Currency, company.CreatedAt, company.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			tax_id = EXCLUDED.tax_id,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	query := squirrel.Select("id", "user_id", "name", "tax_id", "address", "phone", "email", "logo_path", "currency", "created_at", "updated_at").
		From("companies").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var company models.Company
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID, &company.UserID, &company.Name, &company.TaxID, &company.Address, &company.Phone,
		&company.Email, &company.LogoPath, &company.Currency, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &company, nil
}

func (r *CompanyRepository) UpdateLogoPath(ctx context.Context, userID uuid.UUID, logoPath string) error {
	query := squirrel.Update("companies").
		Set("logo_path", logoPath).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
