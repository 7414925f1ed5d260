package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sepatuhub/pos-api/internal/application/alerting"
	"github.com/sepatuhub/pos-api/internal/application/audit"
	"github.com/sepatuhub/pos-api/internal/application/auth"
	"github.com/sepatuhub/pos-api/internal/application/catalog"
	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/application/reporting"
	"github.com/sepatuhub/pos-api/internal/application/settlement"
	"github.com/sepatuhub/pos-api/internal/infrastructure/media"
	"github.com/sepatuhub/pos-api/internal/infrastructure/notify"
	infrapdf "github.com/sepatuhub/pos-api/internal/infrastructure/pdf"
	"github.com/sepatuhub/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/sepatuhub/pos-api/internal/interfaces/http"
	"github.com/sepatuhub/pos-api/pkg/config"
	"github.com/sepatuhub/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las transacciones crean los suyos propios
	// ligados a la tx vía TxRunner).
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	psRepo := postgres.NewProductSizeRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	notifRepo := postgres.NewNotificationLogRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	typeRepo := postgres.NewProductTypeRepository(pool)
	sizeRepo := postgres.NewSizeRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mediaStore, err := media.NewFSStore(cfg.Media.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar directorio de medios")
	}

	// Alertas de stock: chequeo post-commit disparado por ledger y settlement.
	alertingUC := alerting.New(productRepo, notifRepo, notify.NewLogNotifier(log), log)

	ledgerUC := ledger.New(txRunner, alertingUC)
	settlementUC := settlement.New(txRunner, txnRepo, alertingUC)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, psRepo, mediaStore)
	taxonomyUC := catalog.NewTaxonomyUseCase(brandRepo, categoryRepo, typeRepo, sizeRepo)
	supportUC := catalog.NewSupportUseCase(batchRepo, customerRepo)
	reportingUC := reporting.New(reportRepo)
	reportPDFUC := reporting.NewPDFUseCase(reportingUC, infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	auditUC := audit.New(auditRepo)
	authUC := auth.New(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (swagger.json via swag init)
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		TaxonomyUC:   taxonomyUC,
		SupportUC:    supportUC,
		LedgerUC:     ledgerUC,
		SettlementUC: settlementUC,
		ReportingUC:  reportingUC,
		ReportPDFUC:  reportPDFUC,
		AuditUC:      auditUC,
		AlertingUC:   alertingUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
