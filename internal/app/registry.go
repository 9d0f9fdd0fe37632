package app

import (
	"database/sql"

	"employee-portal/internal/balance"
	"employee-portal/internal/config"
	"employee-portal/internal/employee"
	"employee-portal/internal/leave"
	"employee-portal/internal/messaging/kafka"
	"employee-portal/internal/middleware"
	"employee-portal/internal/notification"
	"employee-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}
	auth := middleware.AuthMiddleware(cfg.JWTSecret, employee.NewDirectory(employeeRepo))

	// Without a broker nothing would drain the outbox.
	var (
		employeeService employee.Service
		notifier        notification.Notifier
	)
	if cfg.KafkaBroker != "" {
		employeeService = employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
		notifier = notification.NewOutboxNotifier(outboxRepo, logger)
	} else {
		logger.Warn("KAFKA_BROKER not set, leave notifications are logged only")
		employeeService = employee.NewService(db, employeeRepo, rdb, logger)
		notifier = notification.NewNoopNotifier(logger)
	}

	// --- Services ---
	ledger := balance.NewLedger(balanceRepo, logger)
	policy := leave.NewPolicy(cfg.Leave.AllowCancelApproved, cfg.Leave.DeletableStatuses)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, ledger, notifier, rbacService, policy, logger)
	notificationService := notification.NewService(
		notification.NewRedisInbox(rdb, cfg.NotificationInboxSize),
		rbacService,
		logger,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	balanceHandler := balance.NewHandler(ledger, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, auth, logger)
		leave.RegisterRoutes(api, leaveHandler, auth, rdb, logger)
		balance.RegisterRoutes(api, balanceHandler, auth, logger)
		notification.RegisterRoutes(api, notificationHandler, auth, logger)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return nil
}
