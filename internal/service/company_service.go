package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"facturalo/internal/dto"
	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrCompanyNotFound = errors.New("company profile not found")
	ErrInvalidLogo     = errors.New("logo must be a PNG, JPEG or GIF image")
)

const maxLogoSize = 5 * 1024 * 1024

type CompanyService struct {
	companies CompanyStore
	store     ObjectStore
	logger    *zap.Logger
}

func NewCompanyService(companies CompanyStore, store ObjectStore, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		store:     store,
		logger:    logger,
	}
}

func (s *CompanyService) Get(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Save creates or updates the account's single company profile.
func (s *CompanyService) Save(ctx context.Context, userID uuid.UUID, req *dto.SaveCompanyRequest) (*models.Company, error) {
	now := time.Now()
	company := &models.Company{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		TaxID:     req.TaxID,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Currency:  invoice.Currency(req.Currency),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.companies.Upsert(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company profile: %w", err)
	}

	return s.Get(ctx, userID)
}

// UploadLogo stores a new logo blob and points the profile at it. The old
// blob, if any, is deleted best-effort after the switch.
func (s *CompanyService) UploadLogo(ctx context.Context, userID uuid.UUID, data []byte, fileName string) (*models.Company, error) {
	if len(data) == 0 || len(data) > maxLogoSize {
		return nil, ErrInvalidLogo
	}

	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/png", "image/jpeg", "image/gif":
	default:
		return nil, ErrInvalidLogo
	}

	company, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".png"
	}
	logoPath := fmt.Sprintf("%s/logo-%d%s", userID, time.Now().UnixNano(), ext)

	if err := s.store.Upload(ctx, logoPath, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.companies.UpdateLogoPath(ctx, userID, logoPath); err != nil {
		return nil, fmt.Errorf("failed to update logo path: %w", err)
	}

	if company.LogoPath != "" {
		if err := s.store.Delete(ctx, company.LogoPath); err != nil {
			s.logger.Warn("Failed to delete replaced logo",
				zap.String("logo_path", company.LogoPath),
				zap.Error(err),
			)
		}
	}

	return s.Get(ctx, userID)
}

// IssuerInfo resolves the issuer block for invoice rendering. A missing
// profile yields a zero value: the pipeline passes it through unchanged and
// renders an invoice without issuer details.
func (s *CompanyService) IssuerInfo(ctx context.Context, userID uuid.UUID) (invoice.CompanyInfo, error) {
	company, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return invoice.CompanyInfo{}, nil
		}
		return invoice.CompanyInfo{}, err
	}

	info := invoice.CompanyInfo{
		Name:     company.Name,
		TaxID:    company.TaxID,
		Address:  company.Address,
		Phone:    company.Phone,
		Email:    company.Email,
		Currency: company.Currency,
	}

	if company.LogoPath != "" {
		logo, err := s.store.Download(ctx, company.LogoPath)
		if err != nil {
			s.logger.Warn("Failed to load company logo, rendering without it",
				zap.String("logo_path", company.LogoPath),
				zap.Error(err),
			)
		} else {
			info.Logo = logo
		}
	}

	return info, nil
}
