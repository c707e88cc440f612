package handlers

import (
	"facturalo/internal/dto"
	"facturalo/internal/service"
	"facturalo/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create customer
// @Description Add a customer to the caller's directory
// @Tags customers
// @Accept json
// @Produce json
// @Param request body dto.SaveCustomerRequest true "Customer"
// @Security Bearer
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SaveCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	customer, err := h.customerService.Create(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to create customer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create customer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// List godoc
// @Summary List customers
// @Description List the caller's customers, optionally filtered by name or email
// @Tags customers
// @Produce json
// @Param search query string false "Match against name or email"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Security Bearer
// @Success 200 {object} dto.CustomerListResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	search := c.Query("search")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	resp, err := h.customerService.List(c.Context(), userID, search, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list customers",
		})
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update customer
// @Description Update a customer in the caller's directory
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body dto.SaveCustomerRequest true "Customer"
// @Security Bearer
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	var req dto.SaveCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	customer, err := h.customerService.Update(c.Context(), userID, id, &req)
	if err != nil {
		if err == service.ErrCustomerNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		h.logger.Error("Failed to update customer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update customer",
		})
	}

	return c.JSON(dto.NewCustomerResponse(customer))
}

// Delete godoc
// @Summary Delete customer
// @Description Remove a customer from the caller's directory
// @Tags customers
// @Param id path string true "Customer ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	if err := h.customerService.Delete(c.Context(), userID, id); err != nil {
		if err == service.ErrCustomerNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		h.logger.Error("Failed to delete customer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete customer",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
