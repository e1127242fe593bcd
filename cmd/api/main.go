package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "chatgate/docs" // Swagger documentation
	"chatgate/internal/auth"
	"chatgate/internal/config"
	"chatgate/internal/database"
	"chatgate/internal/handlers"
	"chatgate/internal/logger"
	"chatgate/internal/middleware"
	"chatgate/internal/repository"
	"chatgate/internal/securestore"
	"chatgate/internal/service"
	"chatgate/internal/vault"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title ChatGate API
// @version 1.0
// @description Access controlled gateway to a downstream chat service with an admin approval workflow and an interaction ledger

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Repositories
	accountRepo := repository.NewAccountRepository(db.DB)
	roleRepo := repository.NewRoleRepository(db.DB)
	interactionRepo := repository.NewInteractionRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)

	// Free text encryption (optional)
	var vaultClient *vault.Client
	if cfg.Vault.Enabled {
		vaultClient, err = vault.NewClient(&cfg.Vault)
		if err != nil {
			slog.Error("Failed to initialize Vault client", "error", err)
			os.Exit(1)
		}
		slog.Info("Vault encryption enabled", "vault_addr", cfg.Vault.Address)
	} else {
		slog.Warn("Vault is disabled - interaction free text is stored in plain")
	}
	store := securestore.New(vaultClient)

	// Services
	authService := auth.NewService(&cfg.JWT)
	authSvc := service.NewAuthService(accountRepo, authService, &cfg.Admin)
	accessSvc := service.NewAccessService(roleRepo)
	approvalSvc := service.NewApprovalService(roleRepo)
	interactionSvc := service.NewInteractionService(interactionRepo, store)
	auditSvc := service.NewAuditService(auditRepo)
	chatSvc := service.NewChatService(cfg.Chat.BaseURL, cfg.Chat.APIKey, cfg.Chat.Model, cfg.Chat.FallbackReply, cfg.Chat.Timeout)

	// Middleware
	authMw := middleware.NewAuthMiddleware(authService)
	auditMw := middleware.NewAuditMiddleware(auditSvc)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc, auditSvc)
	chatHandler := handlers.NewChatHandler(accessSvc, chatSvc, interactionSvc, auditSvc)
	interactionHandler := handlers.NewInteractionHandler(interactionSvc, accessSvc, auditSvc)
	adminHandler := handlers.NewAdminHandler(approvalSvc, interactionSvc, auditSvc)
	auditHandler := handlers.NewAuditHandler(auditSvc)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/admin/login", authHandler.MasterLogin)

	// Authenticated routes
	authenticated := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(h)
	}
	mux.Handle("GET /api/v1/chat/access", authenticated(chatHandler.Access))
	mux.Handle("POST /api/v1/chat", authenticated(chatHandler.Chat))
	mux.Handle("POST /api/v1/interactions", authenticated(interactionHandler.Log))
	mux.Handle("GET /api/v1/interactions", authenticated(interactionHandler.ListMine))
	mux.Handle("PUT /api/v1/interactions/{id}/feedback", authMw.Authenticate(auditMw.Log("interaction_annotation", "interactions", "Feedback updated")(http.HandlerFunc(interactionHandler.SetFeedback))))
	mux.Handle("POST /api/v1/interactions/{id}/escalate", authenticated(interactionHandler.RequestEscalation))

	// Master routes
	master := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(authMw.RequireMaster(h))
	}
	audited := func(action, resource string, h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(authMw.RequireMaster(auditMw.Log(action, resource, "")(h)))
	}
	mux.Handle("PUT /api/v1/interactions/{id}/automated-reply", audited("interaction_annotation", "interactions", interactionHandler.ReviseAutomatedReply))
	mux.Handle("PUT /api/v1/interactions/{id}/operator-reply", audited("interaction_annotation", "interactions", interactionHandler.SetOperatorReply))
	mux.Handle("GET /api/v1/admin/accounts", audited("admin_view", "accounts", adminHandler.ListAccounts))
	mux.Handle("GET /api/v1/admin/accounts/pending", audited("admin_view", "accounts", adminHandler.ListPending))
	mux.Handle("POST /api/v1/admin/accounts/decide", master(adminHandler.Decide))
	mux.Handle("GET /api/v1/admin/interactions", audited("admin_view", "interactions", adminHandler.ListInteractions))
	mux.Handle("GET /api/v1/admin/audit-logs", master(auditHandler.List))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`)); err != nil {
				slog.Error("Failed to write health check response", "error", err)
			}
			return
		}
		if vaultClient != nil {
			if err := vaultClient.Health(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				if _, err := w.Write([]byte(`{"status":"unhealthy","vault":"error"}`)); err != nil {
					slog.Error("Failed to write health check response", "error", err)
				}
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`)); err != nil {
			slog.Error("Failed to write health check response", "error", err)
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
