package app

import (
	"database/sql"
	"net/http"

	"go-payroll/internal/config"
	"go-payroll/internal/element"
	"go-payroll/internal/employee"
	"go-payroll/internal/grade"
	"go-payroll/internal/ledger"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/workplace"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	engine, err := cfg.Payroll.Engine()
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	elementRepo := element.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	gradeRepo := grade.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	workplaceRepo := workplace.NewRepository(gormDB)

	// --- Services ---
	elementService := element.NewService(db, elementRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, logger)
	gradeService := grade.NewService(db, gradeRepo, logger)
	ledgerService := ledger.NewService(db, ledgerRepo, outboxRepo, ledger.NewReportRenderer(""), logger)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		payroll.NewPayslipBuilder(engine, logger),
		outboxRepo,
		payroll.NewPDFRenderer(""),
		payroll.NewFileStore(cfg.Storage.PDFDir),
		logger,
	)
	workplaceService := workplace.NewService(db, workplaceRepo, logger)

	// --- Handlers ---
	elementHandler := element.NewHandler(elementService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	gradeHandler := grade.NewHandler(gradeService, logger)
	ledgerHandler := ledger.NewHandler(ledgerService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	workplaceHandler := workplace.NewHandler(workplaceService, logger)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	// --- Routes Registration ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
	{
		element.RegisterRoutes(api, elementHandler, auth, rbacService)
		employee.RegisterRoutes(api, employeeHandler, auth, rbacService)
		grade.RegisterRoutes(api, gradeHandler, auth, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, auth, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, auth, rbacService, rdb)
		workplace.RegisterRoutes(api, workplaceHandler, auth, rbacService)
	}

	return nil
}
