package main

import (
	"strings"

	"spendtrack-backend/internal/apperr"
	"spendtrack-backend/internal/audit"
	"spendtrack-backend/internal/auth"
	"spendtrack-backend/internal/budget"
	"spendtrack-backend/internal/config"
	"spendtrack-backend/internal/database"
	"spendtrack-backend/internal/expense"
	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/logging"
	"spendtrack-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logging.Logger()
	defer log.Sync()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	notifier, err := notify.New(cfg, log)
	if err != nil {
		log.Fatal("notifier init failed", zap.Error(err))
	}

	ledgerStore := ledger.NewStore(db)
	budgetStore := budget.NewStore(db)
	guard := budget.NewGuard(db, ledgerStore, budgetStore, notifier, log)
	recorder := audit.NewRecorder(db, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.FiberErrorHandler(log),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Expense Tracker API"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(db))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Expenses
	protected.Post("/expenses", expense.CreateExpenseHandler(ledgerStore, guard, recorder))
	protected.Get("/expenses", expense.ListExpensesHandler(ledgerStore, budgetStore))
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler(ledgerStore, recorder))
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler(ledgerStore, recorder))

	// Budget
	protected.Post("/budget", budget.SetBudgetHandler(budgetStore, recorder))
	protected.Get("/budget", budget.GetBudgetHandler(guard))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	log.Info("server listening", zap.String("port", cfg.HTTPPort), zap.String("notify_backend", cfg.NotifyBackend))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
