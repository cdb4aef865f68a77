// Package main provides the entry point for the uptime API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"uptime-api/internal/auth"
	"uptime-api/internal/config"
	"uptime-api/internal/handler"
	"uptime-api/internal/logger"
	"uptime-api/internal/prober"
	"uptime-api/internal/storage"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info("Starting uptime API", zap.String("env", cfg.Env), zap.Int("port", cfg.HTTPPort))

	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.Error("failed to open data dir", zap.Error(err))
		return err
	}

	hasher := auth.NewHasher(cfg.HashingSecret)
	authenticator := auth.NewAuthenticator(store, log)
	h := handler.New(log, store, authenticator, hasher, cfg)

	r := chi.NewRouter()
	r.Get("/ping", h.Ping)
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.GetUser)
		r.Put("/", h.UpdateUser)
		r.Delete("/", h.DeleteUser)
	})
	r.Route("/tokens", func(r chi.Router) {
		r.Post("/", h.CreateToken)
		r.Get("/", h.GetToken)
		r.Put("/", h.RenewToken)
		r.Delete("/", h.DeleteToken)
	})
	r.Route("/checks", func(r chi.Router) {
		r.Post("/", h.CreateCheck)
		r.Get("/", h.GetCheck)
		r.Put("/", h.UpdateCheck)
		r.Delete("/", h.DeleteCheck)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	probe := prober.New(cfg, store, log)
	if cfg.ProbeEnabled {
		go probe.Start()
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	if cfg.ProbeEnabled {
		probe.Stop()
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
