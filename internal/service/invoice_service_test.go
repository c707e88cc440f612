package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjectStore struct {
	blobs map[string][]byte

	uploadErr error
	deleteErr error
	signErr   error

	uploads int
	deletes int
	signed  []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{blobs: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads++
	f.blobs[key] = data
	return nil
}

func (f *fakeObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, key)
	return fmt.Sprintf("https://blobs.example/%s?sig=%d&ttl=%d", key, len(f.signed), int(ttl.Seconds())), nil
}

func (f *fakeObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.blobs, key)
	return nil
}

type fakeInvoiceStore struct {
	rows map[uuid.UUID]*models.Invoice

	createErr error
	creates   int
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{rows: map[uuid.UUID]*models.Invoice{}}
}

func (f *fakeInvoiceStore) Create(ctx context.Context, inv *models.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	f.rows[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.rows[id]
	if !ok || inv.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return inv, nil
}

func (f *fakeInvoiceStore) List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Invoice, int64, error) {
	var out []*models.Invoice
	for _, inv := range f.rows {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func testForm() invoice.FormData {
	return invoice.FormData{
		Name:  "Jane Client",
		Email: "jane@client.example",
		Items: []invoice.FormItem{
			{Description: "Consulting", Quantity: decimalFromInt(2), UnitPrice: decimalFromInt(150)},
		},
	}
}

func TestPublishStoresBlobAndRecord(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	userID := uuid.New()

	inv, err := svc.Publish(context.Background(), userID, testForm(), invoice.CompanyInfo{Currency: invoice.CurrencyUSD})
	require.NoError(t, err)

	assert.Equal(t, 1, blobs.uploads)
	assert.Equal(t, 1, rows.creates)
	assert.Equal(t, userID, inv.UserID)
	assert.Equal(t, "Jane Client", inv.ClientName)
	assert.True(t, inv.TotalAmount.Equal(decimalFromInt(300)))
	assert.Contains(t, blobs.blobs, inv.PDFPath)
	assert.Equal(t, "%PDF", string(blobs.blobs[inv.PDFPath][:4]))
}

func TestPublishUploadFailureSkipsRecord(t *testing.T) {
	blobs := newFakeObjectStore()
	blobs.uploadErr = errors.New("bucket unavailable")
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())

	_, err := svc.Publish(context.Background(), uuid.New(), testForm(), invoice.CompanyInfo{})
	require.Error(t, err)

	assert.Equal(t, 0, rows.creates, "record must never be attempted after a failed upload")
}

func TestPublishRecordFailureDeletesBlob(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	rows.createErr = errors.New("db down")
	svc := NewInvoiceService(rows, blobs, zap.NewNop())

	_, err := svc.Publish(context.Background(), uuid.New(), testForm(), invoice.CompanyInfo{})
	require.Error(t, err)

	var partial *PartialPublishError
	assert.False(t, errors.As(err, &partial), "cleaned-up publish is an ordinary failure")
	assert.Equal(t, 1, blobs.deletes)
	assert.Empty(t, blobs.blobs, "uploaded blob must be removed")
}

func TestPublishRecordAndCleanupFailureReportsOrphan(t *testing.T) {
	blobs := newFakeObjectStore()
	blobs.deleteErr = errors.New("delete refused")
	rows := newFakeInvoiceStore()
	rows.createErr = errors.New("db down")
	svc := NewInvoiceService(rows, blobs, zap.NewNop())

	_, err := svc.Publish(context.Background(), uuid.New(), testForm(), invoice.CompanyInfo{})
	require.Error(t, err)

	var partial *PartialPublishError
	require.ErrorAs(t, err, &partial)
	assert.NotEmpty(t, partial.PDFPath)
	assert.Contains(t, blobs.blobs, partial.PDFPath, "orphaned blob is left in place")
}

func TestGetMapsMissingRowToNotFound(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceStore(), newFakeObjectStore(), zap.NewNop())

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGetIsScopedToOwner(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	owner := uuid.New()

	inv, err := svc.Publish(context.Background(), owner, testForm(), invoice.CompanyInfo{})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), inv.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	got, err := svc.Get(context.Background(), owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, got.InvoiceNumber)
}

func TestPDFURLSignsHourLongLinkAndCaches(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	userID := uuid.New()

	inv, err := svc.Publish(context.Background(), userID, testForm(), invoice.CompanyInfo{})
	require.NoError(t, err)

	url, err := svc.PDFURL(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.Contains(t, url, inv.PDFPath)
	assert.Contains(t, url, "ttl=3600")

	again, err := svc.PDFURL(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, url, again)
	assert.Len(t, blobs.signed, 1, "second call must hit the cache")
}

// expiringObjectStore mints URLs that expire against an injectable clock,
// mirroring how the S3 presigner stamps X-Amz-Expires.
type expiringObjectStore struct {
	fakeObjectStore
	now      time.Time
	expiries map[string]time.Time
}

func (f *expiringObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url := fmt.Sprintf("https://blobs.example/%s?sig=abc", key)
	f.expiries[url] = f.now.Add(ttl)
	return url, nil
}

func (f *expiringObjectStore) usable(url string) bool {
	expiry, ok := f.expiries[url]
	return ok && f.now.Before(expiry)
}

func TestPDFURLUnusableAfterTTLElapses(t *testing.T) {
	blobs := &expiringObjectStore{
		fakeObjectStore: *newFakeObjectStore(),
		now:             time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC),
		expiries:        map[string]time.Time{},
	}
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	userID := uuid.New()

	inv, err := svc.Publish(context.Background(), userID, testForm(), invoice.CompanyInfo{})
	require.NoError(t, err)

	url, err := svc.PDFURL(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.True(t, blobs.usable(url))

	blobs.now = blobs.now.Add(59 * time.Minute)
	assert.True(t, blobs.usable(url), "link is still live just inside the hour")

	blobs.now = blobs.now.Add(2 * time.Minute)
	assert.False(t, blobs.usable(url), "link is dead once the hour elapses")
}

func TestPDFURLMissingInvoice(t *testing.T) {
	svc := NewInvoiceService(newFakeInvoiceStore(), newFakeObjectStore(), zap.NewNop())

	_, err := svc.PDFURL(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestDownloadPDFNamesFileAfterInvoiceNumber(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	userID := uuid.New()

	inv, err := svc.Publish(context.Background(), userID, testForm(), invoice.CompanyInfo{})
	require.NoError(t, err)

	data, name, err := svc.DownloadPDF(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber), name)
	assert.Equal(t, blobs.blobs[inv.PDFPath], data)
}

func TestDownloadPDFFallsBackToRecordID(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())
	userID := uuid.New()

	inv := &models.Invoice{
		ID:      uuid.New(),
		UserID:  userID,
		PDFPath: "legacy/path.pdf",
	}
	rows.rows[inv.ID] = inv
	blobs.blobs[inv.PDFPath] = []byte("%PDF-1.4 legacy")

	_, name, err := svc.DownloadPDF(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("invoice-%s.pdf", inv.ID), name)
}

func TestPreviewPersistsNothing(t *testing.T) {
	blobs := newFakeObjectStore()
	rows := newFakeInvoiceStore()
	svc := NewInvoiceService(rows, blobs, zap.NewNop())

	pdf, err := svc.Preview(testForm(), invoice.CompanyInfo{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	assert.Equal(t, 0, blobs.uploads)
	assert.Equal(t, 0, rows.creates)
}
