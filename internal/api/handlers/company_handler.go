package handlers

import (
	"io"

	"facturalo/internal/dto"
	"facturalo/internal/service"
	"facturalo/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// Get godoc
// @Summary Get company profile
// @Description Get the caller's issuer profile
// @Tags company
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string
// @Router /company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	company, err := h.companyService.Get(c.Context(), userID)
	if err != nil {
		if err == service.ErrCompanyNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Company profile not found",
			})
		}
		h.logger.Error("Failed to get company profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get company profile",
		})
	}

	return c.JSON(dto.NewCompanyResponse(company))
}

// Save godoc
// @Summary Save company profile
// @Description Create or replace the caller's issuer profile
// @Tags company
// @Accept json
// @Produce json
// @Param request body dto.SaveCompanyRequest true "Company profile"
// @Security Bearer
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Router /company [put]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SaveCompanyRequest
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

	company, err := h.companyService.Save(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to save company profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save company profile",
		})
	}

	return c.JSON(dto.NewCompanyResponse(company))
}

// UploadLogo godoc
// @Summary Upload company logo
// @Description Upload a logo image; replaces the previous one if present
// @Tags company
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image (PNG, JPEG or GIF)"
// @Security Bearer
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /company/logo [post]
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Logo file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read logo file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read logo file",
		})
	}

	company, err := h.companyService.UploadLogo(c.Context(), userID, data, fileHeader.Filename)
	if err != nil {
		switch err {
		case service.ErrInvalidLogo:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case service.ErrCompanyNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Company profile not found",
			})
		}
		h.logger.Error("Failed to upload logo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload logo",
		})
	}

	return c.JSON(dto.NewCompanyResponse(company))
}
