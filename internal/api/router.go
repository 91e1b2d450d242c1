package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaanhetu/marketplace-api/internal/api/handler"
	"github.com/nirmaanhetu/marketplace-api/internal/api/middleware"
	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
	"github.com/nirmaanhetu/marketplace-api/internal/core/service"
	"github.com/nirmaanhetu/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/nirmaanhetu/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nirmaanhetu/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	media ports.MediaStore,
	assistant ports.AssistantClient,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	portfolioRepo := mongodb.NewPortfolioRepository(db)
	chatRepo := mongodb.NewChatRepository(db)

	var limiter *redisdb.Limiter
	if rdb != nil {
		limiter = redisdb.NewLimiter(rdb)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL,
		service.DemoAccounts{OwnerEmail: cfg.Demo.OwnerEmail, BuilderEmail: cfg.Demo.BuilderEmail}, log)
	portfolioService := service.NewPortfolioService(portfolioRepo, userRepo, media, log)
	assistantService := service.NewAssistantService(chatRepo, assistant, log)

	authHandler := handler.NewAuthHandler(authService)
	builderHandler := handler.NewBuilderHandler(portfolioService)
	assistantHandler := handler.NewAssistantHandler(assistantService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	builderOnly := middleware.RBAC(domain.RoleBuilder)
	authLimit := middleware.RateLimit(limiter, "auth", cfg.RateLimit.AuthPerMinute, log)
	assistantLimit := middleware.RateLimit(limiter, "assistant", cfg.RateLimit.AssistantPerMinute, log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.GET("/ping", authHandler.Ping)
	auth.POST("/register", authHandler.Register, authLimit)
	auth.POST("/login", authHandler.Login, authLimit)
	auth.POST("/demo-login", authHandler.DemoLogin, authLimit)
	auth.GET("/get-profile", authHandler.GetProfile, authRequired)
	auth.PUT("/update-profile", authHandler.UpdateProfile, authRequired)

	// --- Builder routes ---
	builder := e.Group("/builder", authRequired)
	builder.POST("/add-portfolio", builderHandler.AddPortfolio, builderOnly)
	builder.GET("/get-portfolio", builderHandler.GetPortfolio, builderOnly)
	builder.PUT("/update-portfolio", builderHandler.UpdatePortfolio, builderOnly)
	builder.DELETE("/delete-logo", builderHandler.DeleteLogo, builderOnly)
	builder.POST("/add-pastwork", builderHandler.AddPastWork, builderOnly)
	builder.DELETE("/delete-pastwork/:id", builderHandler.DeletePastWork, builderOnly)
	builder.GET("/all-portfolios", builderHandler.AllPortfolios)
	builder.GET("/portfolio/:id", builderHandler.PortfolioByID)

	// --- Assistant routes (authenticated by design; the transcript is
	// keyed by the token identity, never a client-supplied id) ---
	e.POST("/assistant", assistantHandler.Send, authRequired, assistantLimit)
	e.POST("/assistant/reset", assistantHandler.Reset, authRequired)
	e.POST("/assistant/detect-lang", assistantHandler.DetectLang)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
