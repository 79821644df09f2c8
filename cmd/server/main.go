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

	"fintrack/internal/auth"
	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.NewHandlers(db, issuer)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handlers.WithRequestLogging(setupRouter(h)),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", server.Addr, "db", cfg.DBPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// setupRouter wires the API routes.
func setupRouter(h *handlers.Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.Handle("GET /api/auth/me", h.AuthMiddleware(http.HandlerFunc(h.Me)))

	mux.Handle("GET /api/categories", h.AuthMiddleware(http.HandlerFunc(h.ListCategories)))
	mux.Handle("POST /api/categories", h.AuthMiddleware(http.HandlerFunc(h.CreateCategory)))

	mux.Handle("GET /api/transactions", h.AuthMiddleware(http.HandlerFunc(h.ListTransactions)))
	mux.Handle("POST /api/transactions", h.AuthMiddleware(http.HandlerFunc(h.CreateTransaction)))
	mux.Handle("GET /api/transactions/summary", h.AuthMiddleware(http.HandlerFunc(h.Summary)))
	mux.Handle("DELETE /api/transactions/{id}", h.AuthMiddleware(http.HandlerFunc(h.DeleteTransaction)))

	return mux
}
