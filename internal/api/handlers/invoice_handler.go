package handlers

import (
	"errors"
	"fmt"

	"facturalo/internal/dto"
	"facturalo/internal/service"
	"facturalo/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, companyService *service.CompanyService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		companyService: companyService,
		logger:         logger,
	}
}

// Preview godoc
// @Summary Preview an invoice PDF
// @Description Transform form data into an invoice and render it without saving
// @Tags invoices
// @Accept json
// @Produce application/pdf
// @Param request body dto.CreateInvoiceRequest true "Invoice form data"
// @Security Bearer
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	req, err := parseInvoiceForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	company, err := h.companyService.IssuerInfo(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to resolve issuer info", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate preview",
		})
	}

	pdf, err := h.invoiceService.Preview(req.FormData(), company)
	if err != nil {
		h.logger.Error("Failed to render invoice preview", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate preview",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// Create godoc
// @Summary Publish an invoice
// @Description Transform, render, upload and record an invoice as a durable artifact
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice form data"
// @Security Bearer
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	req, err := parseInvoiceForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	company, err := h.companyService.IssuerInfo(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to resolve issuer info", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish invoice",
		})
	}

	inv, err := h.invoiceService.Publish(c.Context(), userID, req.FormData(), company)
	if err != nil {
		var partial *service.PartialPublishError
		if errors.As(err, &partial) {
			h.logger.Error("Invoice publish partially failed", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Invoice was not recorded; please retry the publish",
			})
		}
		h.logger.Error("Failed to publish invoice", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to publish invoice",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(inv))
}

// List godoc
// @Summary List invoices
// @Description List the caller's invoices, newest first, with search and pagination
// @Tags invoices
// @Produce json
// @Param search query string false "Match invoice number, client name or client email"
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {object} dto.InvoiceListResponse
// @Failure 401 {object} map[string]string
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	search := c.Query("search")
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	resp, err := h.invoiceService.List(c.Context(), userID, search, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list invoices",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get an invoice
// @Description Fetch a single invoice record
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Security Bearer
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	userID, invoiceID, ok := invoiceParams(c)
	if !ok {
		return nil
	}

	inv, err := h.invoiceService.Get(c.Context(), userID, invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invoice not found",
			})
		}
		h.logger.Error("Failed to get invoice", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get invoice",
		})
	}

	return c.JSON(dto.NewInvoiceResponse(inv))
}

// PDFURL godoc
// @Summary Get a signed PDF URL
// @Description Mint a time-limited signed URL for the invoice's stored PDF
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Security Bearer
// @Success 200 {object} dto.InvoicePDFURLResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDFURL(c *fiber.Ctx) error {
	userID, invoiceID, ok := invoiceParams(c)
	if !ok {
		return nil
	}

	url, err := h.invoiceService.PDFURL(c.Context(), userID, invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invoice not found",
			})
		}
		// Viewing is non-destructive; the client shows "document
		// unavailable" and may simply reload.
		h.logger.Error("Failed to sign invoice pdf url", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document unavailable",
		})
	}

	return c.JSON(dto.InvoicePDFURLResponse{
		URL:       url,
		ExpiresIn: 3600,
	})
}

// Download godoc
// @Summary Download an invoice PDF
// @Description Stream the stored PDF as an attachment
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Security Bearer
// @Success 200 {file} file
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invoices/{id}/download [get]
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	userID, invoiceID, ok := invoiceParams(c)
	if !ok {
		return nil
	}

	data, fileName, err := h.invoiceService.DownloadPDF(c.Context(), userID, invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invoice not found",
			})
		}
		h.logger.Error("Failed to download invoice pdf", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document unavailable",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(data)
}

func parseInvoiceForm(c *fiber.Ctx) (*dto.CreateInvoiceRequest, error) {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// invoiceParams reads the caller and the :id path parameter. When ok is
// false the error response has already been written.
func invoiceParams(c *fiber.Ctx) (userID, invoiceID uuid.UUID, ok bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
		return uuid.Nil, uuid.Nil, false
	}

	invoiceID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, invoiceID, true
}
