// The authsvc process is the credential and identity authority. It owns
// user records, password verification and token issuance, and serves the
// auth command set over the internal RPC protocol.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/platform/internal/config"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/metrics"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/services/auth"
	"github.com/taskboard/platform/internal/storage"
	"github.com/taskboard/platform/internal/storage/memory"
	"github.com/taskboard/platform/internal/storage/postgres"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New("auth", cfg.Logging.Level, cfg.Logging.Format)
	services := config.LoadServicesConfigOrDefault(cfg.ServicesFile)
	m := metrics.New()

	var store storage.UserStore
	if cfg.Database.URL != "" {
		db, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		store = postgres.New(db)
		log.Info("using postgres storage")
	} else {
		store = memory.New()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	svc := auth.New(store, tokens, log)
	handler := auth.NewRPCServer(svc, rpc.ServerConfig{Service: "auth", Log: log, Metrics: m})

	run(log, services.Auth.Addr(), handler)
}

func run(log *logging.Logger, addr string, handler http.Handler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
