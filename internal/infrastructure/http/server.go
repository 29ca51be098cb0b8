package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/shop-wallet/internal/adapter/handler/http"
	"github.com/wekeepgrowing/shop-wallet/internal/config"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/shop-wallet/internal/middleware/auth"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
	"github.com/wekeepgrowing/shop-wallet/pkg/logger"
)

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Services are the use cases exposed over HTTP
type Services struct {
	Customers *usecase.CustomerService
	Purchases *usecase.PurchaseService
	Access    *usecase.AccessService
	Stats     *usecase.StatsService
}

// HealthCheck reports whether the storage backend is reachable
type HealthCheck func(ctx context.Context) error

type Server struct {
	config      *config.Config
	logger      *zap.Logger
	echo        *echo.Echo
	services    *Services
	metrics     *metrics.Metrics
	healthCheck HealthCheck
}

func NewServer(cfg *config.Config, log *zap.Logger, services *Services, m *metrics.Metrics, healthCheck HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	logger.WithEchoLogger(e, log)
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			id, err := gonanoid.Generate(requestIDAlphabet, 16)
			if err != nil {
				return ""
			}
			return id
		},
	}))
	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(m.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	s := &Server{
		config:      cfg,
		logger:      log,
		echo:        e,
		services:    services,
		metrics:     m,
		healthCheck: healthCheck,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	if err := s.healthCheck(c.Request().Context()); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "unhealthy",
			"service": s.config.Service.Name,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.config.Service.Name,
	})
}

func (s *Server) setupRoutes() {
	// Health check and metrics
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(s.logger, s.services.Customers)
	purchaseHandler := handlers.NewPurchaseHandler(s.logger, s.services.Purchases)
	accessHandler := handlers.NewAccessHandler(s.logger, s.services.Access)
	statsHandler := handlers.NewStatsHandler(s.services.Stats)

	api := s.echo.Group("/api")

	// The password check is always public
	api.POST("/auth/check", accessHandler.CheckPassword)

	protected := api.Group("")
	if s.config.Access.RequireToken {
		protected.Use(auth.JWTMiddleware(auth.JWTConfig{
			Secret:    s.config.Access.TokenSecret,
			Logger:    s.logger,
			SkipPaths: []string{"/api/auth/"},
		}))
	}

	customers := protected.Group("/customers")
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.ListCustomers)
	customers.GET("/refer/:referId", customerHandler.GetCustomerByReferralCode)
	customers.GET("/contact/:contactNumber", customerHandler.GetCustomerByContact)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)
	customers.PATCH("/:id/wallet", customerHandler.AdjustWallet)

	purchases := protected.Group("/purchases")
	purchases.POST("", purchaseHandler.CreatePurchase)
	purchases.GET("", purchaseHandler.ListPurchases)
	purchases.GET("/customer/:referId", purchaseHandler.ListPurchasesByCustomer)
	purchases.DELETE("/clear/all", purchaseHandler.ClearAllPurchases)

	protected.GET("/stats", statsHandler.GetStats)
}
