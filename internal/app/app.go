package app

import (
	"context"
	"database/sql"

	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/auth"
	"github.com/RNiyam/attendance-system/internal/breaktime"
	"github.com/RNiyam/attendance-system/internal/config"
	"github.com/RNiyam/attendance-system/internal/employee"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	"github.com/RNiyam/attendance-system/internal/profile"
	"github.com/RNiyam/attendance-system/internal/shared/connection"
	"github.com/RNiyam/attendance-system/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections of one process.
type Infra struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close(ctx context.Context) error {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		return i.DB.Close()
	}
	return nil
}

func connect(cfg config.Config, logger *zap.Logger, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, connectRetries, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, DB: sqlDB}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}
	return infra, nil
}

// migrate creates or updates the schema when AUTO_MIGRATE=1.
func migrate(ctx context.Context, infra *Infra, logger *zap.Logger) error {
	err := infra.GormDB.WithContext(ctx).AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&attendance.Event{},
		&breaktime.Interval{},
		&profile.Profile{},
		&counter.Counter{},
	)
	if err != nil {
		return err
	}
	if err := kafka.EnsureSchema(ctx, infra.DB); err != nil {
		return err
	}
	logger.Info("schema migrated")
	return nil
}

// BuildApp connects the infrastructure and mounts every module on router.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	infra, err := connect(cfg, logger, true)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := migrate(context.Background(), infra, logger); err != nil {
			_ = infra.Close(context.Background())
			return nil, err
		}
	}

	if err := registerModules(router, cfg, infra, logger); err != nil {
		_ = infra.Close(context.Background())
		return nil, err
	}
	return infra, nil
}

// NewLogger builds a production logger when APP_ENV=production and a
// development logger otherwise.
func NewLogger(cfg config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
