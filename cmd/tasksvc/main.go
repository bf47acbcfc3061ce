// The tasksvc process owns task documents. It calls the project service
// for referential checks and serves the task command set over the internal
// RPC protocol.
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
	"github.com/taskboard/platform/internal/services/task"
	"github.com/taskboard/platform/internal/storage"
	"github.com/taskboard/platform/internal/storage/memory"
	"github.com/taskboard/platform/internal/storage/postgres"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New("task", cfg.Logging.Level, cfg.Logging.Format)
	services := config.LoadServicesConfigOrDefault(cfg.ServicesFile)
	m := metrics.New()

	var store storage.TaskStore
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

	projects := rpc.NewProjectClient(rpc.ClientConfig{
		BaseURL: services.Project.URL,
		Timeout: cfg.RPC.Timeout,
		Metrics: m,
	})

	svc := task.New(store, projects, log)
	handler := task.NewRPCServer(svc, rpc.ServerConfig{Service: "task", Log: log, Metrics: m})

	run(log, services.Task.Addr(), handler)
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
