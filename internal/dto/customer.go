package dto

import (
	"time"

	"facturalo/internal/models"
)

type SaveCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"required,email"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type CustomerListResponse struct {
	Customers  []*CustomerResponse `json:"customers"`
	TotalCount int64               `json:"total_count"`
}

func NewCustomerResponse(c *models.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
