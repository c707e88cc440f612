package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facturalo/internal/dto"
	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// signedURLTTL bounds how long a minted PDF link stays valid. Cached URLs
// expire earlier than the link itself so a cache hit is always usable.
const (
	signedURLTTL      = time.Hour
	signedURLCacheTTL = signedURLTTL - 5*time.Minute
)

// PartialPublishError reports a publish that uploaded the PDF but failed to
// record the invoice, and then could not remove the uploaded blob. The caller
// may retry the whole publish; the orphaned blob at PDFPath is not reconciled
// automatically.
type PartialPublishError struct {
	PDFPath string
	Err     error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("invoice record failed after pdf upload (orphaned blob at %s): %v", e.PDFPath, e.Err)
}

func (e *PartialPublishError) Unwrap() error { return e.Err }

var timeNow = time.Now

type InvoiceService struct {
	invoices InvoiceStore
	store    ObjectStore
	urls     *cache.Cache
	logger   *zap.Logger
}

func NewInvoiceService(invoices InvoiceStore, store ObjectStore, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		store:    store,
		urls:     cache.New(signedURLCacheTTL, 10*time.Minute),
		logger:   logger,
	}
}

// Preview issues an invoice document from the form data and renders it,
// without persisting anything. Each call is a distinct issuance event and
// consumes a fresh invoice number; callers rendering the same draft repeatedly
// should reuse the returned PDF instead of calling again.
func (s *InvoiceService) Preview(form invoice.FormData, company invoice.CompanyInfo) ([]byte, error) {
	data := invoice.Transform(form, company)
	return invoice.RenderPDF(&data)
}

// Publish runs the full pipeline: transform, render, upload the PDF, then
// record the invoice row. The upload always happens first; if it fails the
// record is never attempted. If the record fails after a successful upload,
// the blob is deleted best-effort and a PartialPublishError is returned when
// even that cleanup fails.
func (s *InvoiceService) Publish(ctx context.Context, userID uuid.UUID, form invoice.FormData, company invoice.CompanyInfo) (*models.Invoice, error) {
	data := invoice.Transform(form, company)

	pdf, err := invoice.RenderPDF(&data)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	pdfPath := fmt.Sprintf("%s/%s-%d.pdf", userID, data.Number, now.Unix())

	if err := s.store.Upload(ctx, pdfPath, pdf, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to upload invoice pdf: %w", err)
	}

	inv := &models.Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		InvoiceNumber: data.Number,
		ClientName:    data.Client.Name,
		ClientEmail:   data.Client.Email,
		ClientPhone:   data.Client.Phone,
		ClientAddress: data.Client.Address,
		Items:         data.Items,
		Notes:         data.Notes,
		TotalAmount:   data.Subtotal,
		PDFPath:       pdfPath,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		if delErr := s.store.Delete(ctx, pdfPath); delErr != nil {
			s.logger.Warn("Orphaned invoice pdf left in storage",
				zap.String("pdf_path", pdfPath),
				zap.Error(delErr),
			)
			return nil, &PartialPublishError{PDFPath: pdfPath, Err: err}
		}
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}

	s.logger.Info("Invoice published",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("user_id", userID.String()),
		zap.String("pdf_path", pdfPath),
	)

	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, search string, limit, offset int) (*dto.InvoiceListResponse, error) {
	invoices, total, err := s.invoices.List(ctx, userID, search, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.InvoiceListResponse{
		Invoices:   make([]*dto.InvoiceResponse, 0, len(invoices)),
		TotalCount: total,
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, dto.NewInvoiceResponse(inv))
	}
	return resp, nil
}

// PDFURL resolves a signed URL for the invoice's stored PDF, valid for one
// hour. URLs are cached per storage path for slightly less than their
// validity window.
func (s *InvoiceService) PDFURL(ctx context.Context, userID, id uuid.UUID) (string, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}

	if url, ok := s.urls.Get(inv.PDFPath); ok {
		return url.(string), nil
	}

	url, err := s.store.SignedURL(ctx, inv.PDFPath, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign invoice pdf url: %w", err)
	}

	s.urls.SetDefault(inv.PDFPath, url)
	return url, nil
}

// DownloadPDF fetches the stored PDF bytes along with the download filename,
// invoice-<number>.pdf, falling back to the record id when the number is
// missing.
func (s *InvoiceService) DownloadPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.store.Download(ctx, inv.PDFPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download invoice pdf: %w", err)
	}

	name := inv.InvoiceNumber
	if name == "" {
		name = inv.ID.String()
	}
	return data, fmt.Sprintf("invoice-%s.pdf", name), nil
}
