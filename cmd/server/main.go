package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vendor-pay.backend/internal/config"
	"vendor-pay.backend/internal/infrastructure/jobs"
	"vendor-pay.backend/internal/infrastructure/payments"
	"vendor-pay.backend/internal/infrastructure/repositories"
	"vendor-pay.backend/internal/interfaces/http/handlers"
	"vendor-pay.backend/internal/interfaces/http/middleware"
	"vendor-pay.backend/internal/usecases"
	"vendor-pay.backend/pkg/jwt"
	"vendor-pay.backend/pkg/logger"
	"vendor-pay.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	planRepo := repositories.NewSubscriptionPlanRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	trialRepo := repositories.NewTrialUsageRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	uow := repositories.NewUnitOfWork(db)
	locker := repositories.NewVendorLocker()

	// Payout settlement goes through the finance team; the processor only
	// hands payouts over, admins confirm completion via the API.
	processor := payments.NewManualProcessor()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	vendorUsecase := usecases.NewVendorUsecase(vendorRepo, userRepo, auditRepo)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(subscriptionRepo, planRepo, vendorRepo, auditRepo, uow)
	commissionUsecase := usecases.NewCommissionUsecase(commissionRepo, vendorRepo, subscriptionRepo, auditRepo)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, productRepo, auditRepo, commissionUsecase, uow)
	payoutUsecase := usecases.NewPayoutUsecase(payoutRepo, commissionRepo, vendorRepo, subscriptionRepo, auditRepo, uow, locker, processor)
	trialUsecase := usecases.NewTrialFraudUsecase(trialRepo, planRepo, auditRepo)
	reportingUsecase := usecases.NewReportingUsecase(orderRepo, commissionRepo, payoutRepo, vendorRepo, trialRepo, payoutUsecase)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	vendorHandler := handlers.NewVendorHandler(vendorUsecase)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionUsecase, vendorUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase, vendorUsecase)
	payoutHandler := handlers.NewPayoutHandler(payoutUsecase, vendorUsecase)
	adminPayoutHandler := handlers.NewAdminPayoutHandler(payoutUsecase)
	trialHandler := handlers.NewTrialHandler(trialUsecase)
	reportHandler := handlers.NewReportHandler(reportingUsecase, vendorUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewTrialExpiryJob(trialRepo, cfg.Jobs.TrialExpiryInterval)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		vendorHandler:       vendorHandler,
		subscriptionHandler: subscriptionHandler,
		orderHandler:        orderHandler,
		payoutHandler:       payoutHandler,
		adminPayoutHandler:  adminPayoutHandler,
		trialHandler:        trialHandler,
		reportHandler:       reportHandler,
		authMiddleware:      authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Vendor-Pay Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
