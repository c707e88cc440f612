package api

import (
	"facturalo/docs"
	"facturalo/internal/api/handlers"
	"facturalo/pkg/auth"
	"facturalo/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	customerHandler *handlers.CustomerHandler,
	invoiceHandler *handlers.InvoiceHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger docs are registered by the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	company := protected.Group("/company")
	company.Get("", companyHandler.Get)
	company.Put("", companyHandler.Save)
	company.Post("/logo", companyHandler.UploadLogo)

	customers := protected.Group("/customers")
	customers.Post("", customerHandler.Create)
	customers.Get("", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	invoices := protected.Group("/invoices")
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Post("", invoiceHandler.Create)
	invoices.Get("", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Get("/:id/pdf", invoiceHandler.PDFURL)
	invoices.Get("/:id/download", invoiceHandler.Download)

	return app
}
