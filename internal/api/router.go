package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projectmanager/auth-service/internal/api/handler"
	"github.com/projectmanager/auth-service/internal/api/middleware"
	"github.com/projectmanager/auth-service/internal/core/ports"
	"github.com/projectmanager/auth-service/internal/core/token"
)

// Deps carries the process-lifetime collaborators the router wires into
// handlers. Everything here is constructed once in main.
type Deps struct {
	DB          *gorm.DB
	AuthService ports.AuthService
	Issuer      *token.Issuer
	Users       ports.UserRepository
	FrontendURL string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.FrontendURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	authHandler := handler.NewAuthHandler(d.AuthService)
	protect := middleware.Auth(d.Issuer, d.Users)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/google", authHandler.LoginGoogle)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password/:token", authHandler.ResetPassword)
	e.GET("/auth/verify-reset-token/:token", authHandler.VerifyResetToken)
	e.GET("/me", authHandler.Me, protect)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
