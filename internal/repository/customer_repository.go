package repository

import (
	"context"
	"fmt"

	"facturalo/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CustomerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCustomerRepository(db *pgxpool.Pool, logger *zap.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := squirrel.Insert("customers").
		Columns("id", "user_id", "name", "address", "phone", "email", "created_at", "updated_at").
		Values(customer.ID, customer.UserID, customer.Name, customer.Address, customer.Phone,
			customer.Email, customer.CreatedAt, customer.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CustomerRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Customer, error) {
	query := squirrel.Select("id", "user_id", "name", "address", "phone", "email", "created_at", "updated_at").
		From("customers").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&customer.ID, &customer.UserID, &customer.Name, &customer.Address, &customer.Phone,
		&customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := squirrel.Update("customers").
		Set("name", customer.Name).
		Set("address", customer.Address).
		Set("phone", customer.Phone).
		Set("email", customer.Email).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": customer.ID, "user_id": customer.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("customers").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// List returns one page of the account's customers plus the exact total count
// for the same filter. An empty search matches everything.
func (r *CustomerRepository) List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Customer, int64, error) {
	filter := squirrel.And{squirrel.Eq{"user_id": userID}}
	if search != "" {
		pattern := fmt.Sprintf("%%%s%%", search)
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	countQuery := squirrel.Select("COUNT(*)").
		From("customers").
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

	query := squirrel.Select("id", "user_id", "name", "address", "phone", "email", "created_at", "updated_at").
		From("customers").
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

	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(
			&customer.ID, &customer.UserID, &customer.Name, &customer.Address, &customer.Phone,
			&customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		customers = append(customers, &customer)
	}

	return customers, total, rows.Err()
}
