package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	MovementUC *usecase.MovementUseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Login (público)
	userHandler := NewUserHandler(deps.UserUC)
	api.Post("/users/login", userHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido), incluye operaciones de stock
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/consume", productHandler.Consume)
	products.Post("/:id/restock", productHandler.Restock)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Users (protegido)
	users := protected.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Movements (protegido; correcciones del historial solo para Admin)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", RequireRole(entity.RoleAdmin), movementHandler.Create)
	movements.Put("/:id", RequireRole(entity.RoleAdmin), movementHandler.Update)
	movements.Delete("/:id", RequireRole(entity.RoleAdmin), movementHandler.Delete)

	// Reports (protegido, solo lectura)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/total-products", reportHandler.TotalProducts)
	reports.Get("/total-units", reportHandler.TotalUnits)
	reports.Get("/total-value", reportHandler.TotalValue)
	reports.Get("/top-stock", reportHandler.TopStock)
	reports.Get("/bottom-stock", reportHandler.BottomStock)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/kpis", reportHandler.KPIs)
	reports.Get("/daily-series", reportHandler.DailySeries)
	reports.Get("/top-consumption", reportHandler.TopConsumption)
	reports.Get("/consumption-by-category", reportHandler.ConsumptionByCategory)
	reports.Get("/movements-by-user", reportHandler.MovementsByUser)
	reports.Get("/export", reportHandler.Export)
}
