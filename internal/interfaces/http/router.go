package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/alerting"
	"github.com/sepatuhub/pos-api/internal/application/audit"
	"github.com/sepatuhub/pos-api/internal/application/auth"
	"github.com/sepatuhub/pos-api/internal/application/catalog"
	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/application/reporting"
	"github.com/sepatuhub/pos-api/internal/application/settlement"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *catalog.ProductUseCase
	TaxonomyUC   *catalog.TaxonomyUseCase
	SupportUC    *catalog.SupportUseCase
	LedgerUC     *ledger.UseCase
	SettlementUC *settlement.UseCase
	ReportingUC  *reporting.UseCase
	ReportPDFUC  *reporting.PDFUseCase
	AuditUC      *audit.UseCase
	AlertingUC   *alerting.UseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Logger disponible para writeError en toda la API.
	api.Use(func(c *fiber.Ctx) error {
		c.Locals(localLogger, deps.Log)
		return c.Next()
	})

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock ledger (protegido)
	stock := protected.Group("/stock")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	stock.Post("/adjust", ledgerHandler.Adjust)
	stock.Post("/sizes", ledgerHandler.CreateVariant)
	stock.Put("/sizes/:id", ledgerHandler.SetQuantity)
	stock.Delete("/sizes/:id", adminOnly, ledgerHandler.DeleteVariant)
	stock.Post("/sync", adminOnly, ledgerHandler.SyncAll)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.SettlementUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", adminOnly, transactionHandler.Delete)

	// Taxonomía: brands, categories, product types, sizes (protegido)
	taxonomyHandler := NewTaxonomyHandler(deps.TaxonomyUC)

	brands := protected.Group("/brands")
	brands.Post("/", taxonomyHandler.CreateBrand)
	brands.Get("/", taxonomyHandler.ListBrands)
	brands.Get("/:id", taxonomyHandler.GetBrand)
	brands.Put("/:id", taxonomyHandler.UpdateBrand)
	brands.Delete("/:id", adminOnly, taxonomyHandler.DeleteBrand)

	categories := protected.Group("/categories")
	categories.Post("/", taxonomyHandler.CreateCategory)
	categories.Get("/", taxonomyHandler.ListCategories)
	categories.Get("/:id", taxonomyHandler.GetCategory)
	categories.Put("/:id", taxonomyHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, taxonomyHandler.DeleteCategory)

	productTypes := protected.Group("/product-types")
	productTypes.Post("/", taxonomyHandler.CreateProductType)
	productTypes.Get("/", taxonomyHandler.ListProductTypes)
	productTypes.Put("/:id", taxonomyHandler.UpdateProductType)
	productTypes.Delete("/:id", adminOnly, taxonomyHandler.DeleteProductType)

	sizes := protected.Group("/sizes")
	sizes.Post("/", taxonomyHandler.CreateSize)
	sizes.Get("/", taxonomyHandler.ListSizes)
	sizes.Delete("/:id", adminOnly, taxonomyHandler.DeleteSize)

	// Lotes de compra y clientes (protegido)
	supportHandler := NewSupportHandler(deps.SupportUC)

	batches := protected.Group("/stock-batches")
	batches.Post("/", supportHandler.CreateStockBatch)
	batches.Get("/", supportHandler.ListStockBatches)
	batches.Get("/:id", supportHandler.GetStockBatch)
	batches.Put("/:id", supportHandler.UpdateStockBatch)
	batches.Delete("/:id", adminOnly, supportHandler.DeleteStockBatch)

	customers := protected.Group("/customers")
	customers.Post("/", supportHandler.CreateCustomer)
	customers.Get("/", supportHandler.ListCustomers)
	customers.Get("/:id", supportHandler.GetCustomer)
	customers.Put("/:id", supportHandler.UpdateCustomer)
	customers.Delete("/:id", adminOnly, supportHandler.DeleteCustomer)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportingUC, deps.ReportPDFUC)
	reports.Get("/profit", reportHandler.ProfitGraph)
	reports.Get("/summary", reportHandler.MonthlySummary)
	reports.Get("/summary/pdf", reportHandler.MonthlyReportPDF)

	// Audit log (protegido, solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", adminOnly, auditHandler.List)

	// Notificaciones de stock (protegido)
	notificationHandler := NewNotificationHandler(deps.AlertingUC)
	protected.Post("/notifications/check", notificationHandler.CheckAll)
}
