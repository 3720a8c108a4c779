package app

import (
	"context"
	"net/http"
	"time"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/config"
	"go-workforce/internal/middleware"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the HTTP modules are built from.
// Redis is optional; without it reads go straight to the database.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Clock  clock.Clock
	Logger *zap.Logger
	Config *config.Config
}

// NewRouter builds the gin engine with every module mounted under /api.
// A nil Clock, Logger or Config falls back to its default.
func NewRouter(d Deps) (*gin.Engine, *Modules) {
	if d.Clock == nil {
		d.Clock = clock.System()
	}
	if d.Logger == nil {
		d.Logger = zap.L()
	}
	if d.Config == nil {
		d.Config = config.Default()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(d.Logger.Named("http")),
	)

	api := r.Group("/api")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(d.Config.RateLimitRPS), d.Config.RateLimitBurst),
		middleware.Idempotency(d.Redis),
	)
	api.GET("/status", status)

	return r, registerModules(api, d)
}

func status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Workforce API is running",
	})
}

// RunAPI connects to the backing services and serves HTTP until ctx is
// cancelled.
func RunAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.api")

	db, err := connectDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	log.Info("database connection established")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
		if err != nil {
			return err
		}
		defer rdb.Close()
		log.Info("redis connection established")
	} else {
		log.Warn("REDIS_ADDR not set, caching and idempotency keys disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, modules := NewRouter(Deps{
		DB:     db,
		Redis:  rdb,
		Clock:  clock.System(),
		Logger: logger,
		Config: cfg,
	})

	return bootstrap.RunHTTPServer(ctx, router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewSystemLogAuditLogger(modules.SystemLogs))
}

func connectDB(cfg *config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}, cfg.DBMaxRetries)
}
