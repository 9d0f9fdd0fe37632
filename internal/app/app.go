package app

import (
	"employee-portal/internal/balance"
	"employee-portal/internal/config"
	"employee-portal/internal/employee"
	"employee-portal/internal/leave"
	"employee-portal/internal/messaging/kafka"
	"employee-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func connectDB(cfg config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.DBMaxRetries,
	)
}

// migrate creates or updates the tables owned by this service. employees
// must come first; leave_requests references it.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&leave.LeaveRequest{},
		&balance.LeaveBalanceEntry{},
		&kafka.OutboxRecord{},
	)
}

func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L()

	gormDB, err := connectDB(cfg)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, redisClient, cfg, logger)
}
