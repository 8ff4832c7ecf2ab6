package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-paytrack/internal/bootstrap"
	"go-paytrack/internal/cashadvance"
	"go-paytrack/internal/clock"
	"go-paytrack/internal/deduction"
	"go-paytrack/internal/messaging/kafka"
	"go-paytrack/internal/middleware"
	"go-paytrack/internal/payweek"
	"go-paytrack/internal/policy"
	"go-paytrack/internal/rbac"
	"go-paytrack/internal/rbac/infra"
	"go-paytrack/internal/settlement"
	"go-paytrack/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	clockRepo := clock.NewRepository(gormDB)
	payweekRepo := payweek.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	advanceRepo := cashadvance.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	auditLogger := bootstrap.NewStdoutAuditLogger()

	// --- Services ---
	payweekService := payweek.NewService(payweekRepo)
	clockService := clock.NewService(db, clockRepo, payweekService)
	policyService := policy.NewService(policyRepo)
	advanceService := cashadvance.NewService(db, advanceRepo, counterRepo, auditLogger)
	deductionService := deduction.NewService(db, deductionRepo)
	settlementService := settlement.NewService(db, clockRepo, advanceRepo, deductionService, policyService, outboxRepo)

	// --- Handlers ---
	clockHandler := clock.NewHandler(clockService, rbacService)
	policyHandler := policy.NewHandler(policyService)
	advanceHandler := cashadvance.NewHandlerWithRedis(advanceService, rbacService, rdb)
	deductionHandler := deduction.NewHandler(deductionService, rbacService)
	settlementHandler := settlement.NewHandler(settlementService, rbacService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	{
		clock.RegisterRoutes(api, clockHandler, rbacService)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		cashadvance.RegisterRoutes(api, advanceHandler, rbacService, rdb)
		deduction.RegisterRoutes(api, deductionHandler, rbacService)
		settlement.RegisterRoutes(api, settlementHandler, rbacService)
	}

	return nil
}
