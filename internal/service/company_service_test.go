package service

import (
	"context"
	"testing"

	"facturalo/internal/dto"
	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompanyStore struct {
	byUser map[uuid.UUID]*models.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{byUser: map[uuid.UUID]*models.Company{}}
}

func (f *fakeCompanyStore) Upsert(ctx context.Context, company *models.Company) error {
	if existing, ok := f.byUser[company.UserID]; ok {
		company.ID = existing.ID
		company.LogoPath = existing.LogoPath
	}
	f.byUser[company.UserID] = company
	return nil
}

func (f *fakeCompanyStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	company, ok := f.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *company
	return &copied, nil
}

func (f *fakeCompanyStore) UpdateLogoPath(ctx context.Context, userID uuid.UUID, logoPath string) error {
	company, ok := f.byUser[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	company.LogoPath = logoPath
	return nil
}

func saveRequest() *dto.SaveCompanyRequest {
	return &dto.SaveCompanyRequest{
		Name:     "Facturalo Ltd",
		TaxID:    "TAX-123",
		Address:  "42 Issuer St",
		Phone:    "+1 555 0100",
		Email:    "billing@facturalo.dev",
		Currency: "EURO",
	}
}

var pngLogo = []byte("\x89PNG\r\n\x1a\n fake image payload")

func TestCompanySaveIsUpsert(t *testing.T) {
	companies := newFakeCompanyStore()
	svc := NewCompanyService(companies, newFakeObjectStore(), zap.NewNop())
	userID := uuid.New()

	_, err := svc.Get(context.Background(), userID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	first, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)
	assert.Equal(t, invoice.CurrencyEURO, first.Currency)

	req := saveRequest()
	req.Name = "Facturalo GmbH"
	second, err := svc.Save(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, "Facturalo GmbH", second.Name)
	assert.Len(t, companies.byUser, 1, "one profile per account")
}

func TestUploadLogoRejectsNonImages(t *testing.T) {
	companies := newFakeCompanyStore()
	svc := NewCompanyService(companies, newFakeObjectStore(), zap.NewNop())
	userID := uuid.New()

	_, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	_, err = svc.UploadLogo(context.Background(), userID, []byte("definitely not an image"), "logo.png")
	assert.ErrorIs(t, err, ErrInvalidLogo)

	_, err = svc.UploadLogo(context.Background(), userID, nil, "logo.png")
	assert.ErrorIs(t, err, ErrInvalidLogo)
}

func TestUploadLogoReplacesPreviousBlob(t *testing.T) {
	companies := newFakeCompanyStore()
	blobs := newFakeObjectStore()
	svc := NewCompanyService(companies, blobs, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	company, err := svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err)
	firstPath := company.LogoPath
	require.NotEmpty(t, firstPath)

	company, err = svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, company.LogoPath)
	assert.Equal(t, 1, blobs.deletes, "old logo blob is deleted after the switch")
}

func TestUploadLogoDeleteFailureIsNotFatal(t *testing.T) {
	companies := newFakeCompanyStore()
	blobs := newFakeObjectStore()
	svc := NewCompanyService(companies, blobs, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	_, err = svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err)

	blobs.deleteErr = assert.AnError
	company, err := svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err, "replacement succeeds even when the old blob lingers")
	assert.NotEmpty(t, company.LogoPath)
}

func TestIssuerInfoMissingProfileIsZeroValue(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyStore(), newFakeObjectStore(), zap.NewNop())

	info, err := svc.IssuerInfo(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, invoice.CompanyInfo{}, info)
}

func TestIssuerInfoIncludesLogoBytes(t *testing.T) {
	companies := newFakeCompanyStore()
	blobs := newFakeObjectStore()
	svc := NewCompanyService(companies, blobs, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)
	_, err = svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err)

	info, err := svc.IssuerInfo(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Facturalo Ltd", info.Name)
	assert.Equal(t, invoice.CurrencyEURO, info.Currency)
	assert.Equal(t, pngLogo, info.Logo)
}

func TestIssuerInfoLogoFetchFailureDegrades(t *testing.T) {
	companies := newFakeCompanyStore()
	blobs := newFakeObjectStore()
	svc := NewCompanyService(companies, blobs, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)
	company, err := svc.UploadLogo(context.Background(), userID, pngLogo, "logo.png")
	require.NoError(t, err)

	delete(blobs.blobs, company.LogoPath)

	info, err := svc.IssuerInfo(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Facturalo Ltd", info.Name)
	assert.Nil(t, info.Logo, "missing logo renders without it")
}
