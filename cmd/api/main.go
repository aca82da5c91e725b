package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/lead-outreach/internal/auth"
	"github.com/octobees/lead-outreach/internal/config"
	"github.com/octobees/lead-outreach/internal/database"
	"github.com/octobees/lead-outreach/internal/events"
	"github.com/octobees/lead-outreach/internal/handler"
	middlewarepkg "github.com/octobees/lead-outreach/internal/middleware"
	"github.com/octobees/lead-outreach/internal/provider"
	"github.com/octobees/lead-outreach/internal/ratelimit"
	"github.com/octobees/lead-outreach/internal/repository"
	"github.com/octobees/lead-outreach/internal/router"
	"github.com/octobees/lead-outreach/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	businessesRepo := repository.NewPGXBusinessesRepository(pool)
	contactsRepo := repository.NewPGXContactsRepository(pool)
	logsRepo := repository.NewPGXEnrichmentLogsRepository(pool)
	messagesRepo := repository.NewPGXMessagesRepository(pool)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	abstractClient := provider.NewAbstractClient(cfg.AbstractAPIKey, httpClient)
	hunterClient := provider.NewHunterClient(cfg.HunterAPIKey, httpClient)

	var delivery service.EmailDeliveryProvider
	if cfg.SendGridAPIKey != "" {
		delivery = provider.NewSendGridClient(cfg.SendGridAPIKey, cfg.Sender.Email, cfg.Sender.Name, httpClient)
	}

	var sink events.Sink = events.NopSink{}
	if cfg.EventSinkURL != "" {
		sink = events.NewHTTPSink(nil, cfg.EventSinkURL)
	}

	limiter := ratelimit.NewWindowLimiter(cfg.ProviderLimits)

	authService := service.NewAuthService(usersRepo, jwtManager)
	enrichmentService := service.NewEnrichmentService(businessesRepo, contactsRepo, logsRepo, limiter, abstractClient, hunterClient, sink)
	batchService := service.NewBatchService(businessesRepo, enrichmentService, cfg.BatchEnrichDelay)
	outreachService := service.NewOutreachService(messagesRepo, delivery, cfg.BatchSendDelay)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Enrich: handler.NewEnrichHandler(enrichmentService, batchService),
		Email:  handler.NewEmailHandler(outreachService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
