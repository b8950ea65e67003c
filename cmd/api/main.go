// Package main is the entry point for the auth service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/projectmanager/auth-service/internal/api"
	"github.com/projectmanager/auth-service/internal/core/password"
	"github.com/projectmanager/auth-service/internal/core/service"
	"github.com/projectmanager/auth-service/internal/core/token"
	"github.com/projectmanager/auth-service/internal/infrastructure/config"
	"github.com/projectmanager/auth-service/internal/infrastructure/db/postgres"
	"github.com/projectmanager/auth-service/internal/infrastructure/identity"
	"github.com/projectmanager/auth-service/internal/infrastructure/mail"
	"github.com/projectmanager/auth-service/pkg/logger"
)

// @title ProjectManager Auth Service API
// @version 1.0
// @description Registration, login, Google login, and password-reset flows.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// No logger yet; this is the one place stderr is the best we have.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	users := postgres.NewUserRepository(db)
	hasher := password.NewHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	verifier := identity.NewGoogleVerifier(cfg.GoogleClientID)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, cfg.ResetTokenTTL)

	authService := service.NewAuthService(
		users, hasher, issuer, verifier, mailer,
		cfg.ResetTokenTTL, cfg.FrontendURL, log,
	)

	e := api.NewRouter(api.Deps{
		DB:          db,
		AuthService: authService,
		Issuer:      issuer,
		Users:       users,
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("auth service stopped")
}
