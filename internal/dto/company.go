package dto

import (
	"time"

	"facturalo/internal/models"
)

type SaveCompanyRequest struct {
	Name     string `json:"name" validate:"required"`
	TaxID    string `json:"tax_id" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Currency string `json:"currency" validate:"required,oneof=USD EURO"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LogoPath  string `json:"logo_path,omitempty"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

func NewCompanyResponse(c *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		TaxID:     c.TaxID,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		LogoPath:  c.LogoPath,
		Currency:  string(c.Currency),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
