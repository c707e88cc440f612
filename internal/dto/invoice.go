package dto

import (
	"time"

	"facturalo/internal/invoice"
	"facturalo/internal/models"

	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// CreateInvoiceRequest is the form-data record produced by the invoice form.
// It is validated here, at the capture boundary; the pipeline itself assumes
// valid input.
type CreateInvoiceRequest struct {
	Name    string               `json:"name" validate:"required"`
	ID      string               `json:"id"`
	Email   string               `json:"email" validate:"required,email"`
	Phone   string               `json:"phone"`
	Address string               `json:"address"`
	Notes   string               `json:"notes"`
	Items   []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// FormData converts the request to the pipeline's input contract.
func (r *CreateInvoiceRequest) FormData() invoice.FormData {
	items := make([]invoice.FormItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, invoice.FormItem{
			Description: it.Description,
			Quantity:    decimal.NewFromFloat(it.Quantity),
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		})
	}
	return invoice.FormData{
		Name:    r.Name,
		ID:      r.ID,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
		Items:   items,
	}
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email"`
	ClientPhone   string          `json:"client_phone,omitempty"`
	ClientAddress string          `json:"client_address,omitempty"`
	Items         []invoice.Item  `json:"items"`
	Notes         string          `json:"notes,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PDFPath       string          `json:"pdf_path"`
	CreatedAt     string          `json:"created_at"`
}

type InvoiceListResponse struct {
	Invoices   []*InvoiceResponse `json:"invoices"`
	TotalCount int64              `json:"total_count"`
}

type InvoicePDFURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

func NewInvoiceResponse(inv *models.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientPhone:   inv.ClientPhone,
		ClientAddress: inv.ClientAddress,
		Items:         inv.Items,
		Notes:         inv.Notes,
		TotalAmount:   inv.TotalAmount,
		PDFPath:       inv.PDFPath,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}
