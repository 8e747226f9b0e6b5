package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepinsight/backend/internal/config"
	"github.com/deepinsight/backend/internal/handler"
	"github.com/deepinsight/backend/internal/logging"
	"github.com/deepinsight/backend/internal/notify"
	"github.com/deepinsight/backend/internal/repository"
	"github.com/deepinsight/backend/internal/service"
	"github.com/deepinsight/backend/internal/storage"
	"github.com/deepinsight/backend/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
	}
	defer store.Close()

	signer := auth.NewSigner(auth.SessionSecretBytes(cfg.SessionSecret))
	sessionService := service.NewSessionService(store.Sessions, signer, cfg.SessionTTL)
	authService := service.NewAuthService(store.Admins, sessionService)
	slog.Info("session lifetime", "ttl", sessionService.TTL())

	// 期限切れセッションは起動時にまとめて削除する
	if n, err := sessionService.SweepExpired(ctx); err != nil {
		slog.Warn("sweep expired sessions failed", "error", err)
	} else if n > 0 {
		slog.Info("expired sessions removed", "count", n)
	}

	if cfg.AdminEmail != "" {
		admin, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			logging.Fatal("failed to provision admin", "email", cfg.AdminEmail, "error", err)
		}
		slog.Info("admin account ready", "admin_id", admin.ID, "email", admin.Email)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.SMTP.Enabled() {
		notifier = notify.NewSMTPNotifier(cfg.SMTP)
		slog.Info("inquiry email notifications enabled", "to", cfg.SMTP.To)
	}

	routes := handler.Routes(handler.Deps{
		DB:          store.DB,
		Inquiries:   service.NewInquiryService(store.Inquiries, notifier),
		Posts:       service.NewPostService(store.Posts),
		Auth:        authService,
		Sessions:    sessionService,
		Storage:     storage.NewLocalStorage(cfg.UploadDir, "/uploads"),
		UploadDir:   cfg.UploadDir,
		FrontendURL: cfg.FrontendURL,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "driver", cfg.DatabaseDriver, "production", cfg.Production)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
