package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"homequote.backend/internal/config"
	"homequote.backend/internal/infrastructure/clients"
	"homequote.backend/internal/infrastructure/events"
	"homequote.backend/internal/infrastructure/repositories"
	"homequote.backend/internal/interfaces/http/handlers"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/usecases"
	"homequote.backend/pkg/crypto"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

const crmStatePrefix = "crm_state:"

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
	newSessionStore = redis.NewSessionStore
	newTokenCipher  = crypto.NewTokenCipher
	newEmitter      = events.New
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	categoryRepo := repositories.NewServiceCategoryRepository(db)
	addonRepo := repositories.NewAddonRepository(db)
	fieldRepo := repositories.NewCategoryFieldRepository(db)
	questionRepo := repositories.NewFormQuestionRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	partnerRepo := repositories.NewPartnerRepository(db)
	userProfileRepo := repositories.NewUserProfileRepository(db)
	integrationRepo := repositories.NewCRMIntegrationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	tokenCipher, err := newTokenCipher(cfg.Security.TokenEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize token cipher: %w", err)
	}

	emitter, closeEmitter := newEmitter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func() {
		if err := closeEmitter(); err != nil {
			logger.Warn(context.Background(), "Failed to flush analytics events", zap.Error(err))
		}
	}()

	// Outbound clients
	stripeClient := clients.NewStripeClient(cfg.Stripe.APIBaseURL, cfg.Stripe.Timeout)
	authProvider := clients.NewAuthProviderClient(cfg.Auth.URL, cfg.Auth.APIKey, cfg.Auth.Timeout)
	postcodeClient := clients.NewPostcodeClient(cfg.Postcode.APIBaseURL, cfg.Postcode.Timeout)
	ghlClient := clients.NewGHLClient(clients.GHLConfig{
		ClientID:     cfg.CRM.ClientID,
		ClientSecret: cfg.CRM.ClientSecret,
		RedirectURL:  cfg.CRM.RedirectURL,
		AuthURL:      cfg.CRM.AuthURL,
		TokenURL:     cfg.CRM.TokenURL,
		APIBaseURL:   cfg.CRM.APIBaseURL,
		APIVersion:   cfg.CRM.APIVersion,
		Scopes:       cfg.CRM.Scopes,
		Timeout:      cfg.CRM.Timeout,
	})
	domainVerifier := clients.NewDomainVerifier(net.DefaultResolver, cfg.Domain.VerificationLabel)

	// Usecases
	addonUsecase := usecases.NewAddonUsecase(categoryRepo, addonRepo)
	categoryFieldUsecase := usecases.NewCategoryFieldUsecase(categoryRepo, fieldRepo)
	formUsecase := usecases.NewFormUsecase(categoryRepo, questionRepo)
	leadUsecase := usecases.NewLeadUsecase(leadRepo, categoryRepo, questionRepo, uow, emitter)
	partnerUsecase := usecases.NewPartnerUsecase(partnerRepo, domainVerifier, cfg.Domain.PlatformApex, emitter)
	partnerResolver := usecases.NewPartnerResolver(partnerRepo)
	paymentUsecase := usecases.NewPaymentUsecase(stripeClient, cfg.Stripe.DefaultCurrency, emitter)
	postcodeUsecase := usecases.NewPostcodeUsecase(postcodeClient)
	authUsecase := usecases.NewAuthUsecase(authProvider, userProfileRepo, partnerRepo, jwtService)
	crmUsecase := usecases.NewCRMUsecase(
		ghlClient,
		redis.NewStateStore(crmStatePrefix, cfg.CRM.StateTTL),
		tokenCipher,
		integrationRepo,
		emitter,
	)

	// Handlers
	secureCookies := cfg.Server.Env == "production"
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore, cfg.JWT.RefreshExpiry, cfg.Server.PublicURL, secureCookies)
	catalogHandler := handlers.NewCatalogHandler(addonUsecase, categoryFieldUsecase)
	formHandler := handlers.NewFormHandler(formUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	postcodeHandler := handlers.NewPostcodeHandler(postcodeUsecase)
	kandaHandler := handlers.NewKandaHandler()
	partnerHandler := handlers.NewPartnerHandler(partnerUsecase)
	leadHandler := handlers.NewLeadHandler(leadUsecase, partnerUsecase)
	crmHandler := handlers.NewCRMHandler(crmUsecase, partnerUsecase, cfg.Server.PublicURL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerRoutes(r, routeDeps{
		authHandler:      authHandler,
		catalogHandler:   catalogHandler,
		formHandler:      formHandler,
		paymentHandler:   paymentHandler,
		postcodeHandler:  postcodeHandler,
		kandaHandler:     kandaHandler,
		partnerHandler:   partnerHandler,
		leadHandler:      leadHandler,
		crmHandler:       crmHandler,
		authMiddleware:   middleware.AuthMiddleware(jwtService, sessionStore),
		tenantMiddleware: middleware.TenantMiddleware(partnerResolver),
		partnerStatus:    middleware.RejectSuspendedPartner(partnerUsecase),
		idempotencyTTL:   cfg.Security.IdempotencyTTL,
	})

	for _, route := range r.Routes() {
		logger.Info(context.Background(), "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		if err := closeEmitter(); err != nil {
			logger.Warn(context.Background(), "Failed to flush analytics events", zap.Error(err))
		}
		_ = redis.Close()
		os.Exit(0)
	}()

	logger.Info(context.Background(), "HomeQuote backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("public_url", cfg.Server.PublicURL),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
