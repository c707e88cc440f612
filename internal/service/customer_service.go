package service

import (
	"context"
	"errors"
	"time"

	"facturalo/internal/dto"
	"facturalo/internal/models"
	"facturalo/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, req *dto.SaveCustomerRequest) (*models.Customer, error) {
	now := time.Now()
	customer := &models.Customer{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.SaveCustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	customer.Name = req.Name
	customer.Address = req.Address
	customer.Phone = req.Phone
	customer.Email = req.Email

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByID(ctx, userID, id)
}

func (s *CustomerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customerRepo.Delete(ctx, userID, id)
}

func (s *CustomerService) List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) (*dto.CustomerListResponse, error) {
	customers, total, err := s.customerRepo.List(ctx, userID, search, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerListResponse{
		Customers:  make([]*dto.CustomerResponse, 0, len(customers)),
		TotalCount: total,
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, dto.NewCustomerResponse(c))
	}
	return resp, nil
}
