// The gateway process is the public HTTP edge. It terminates the session
// cookie, resolves caller identity against the auth service and forwards
// everything else to the backend services over the internal RPC protocol.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/platform/internal/config"
	"github.com/taskboard/platform/internal/gateway"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/metrics"
	"github.com/taskboard/platform/internal/rpc"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New("gateway", cfg.Logging.Level, cfg.Logging.Format)
	services := config.LoadServicesConfigOrDefault(cfg.ServicesFile)
	m := metrics.New()

	clientCfg := func(target, baseURL string) rpc.ClientConfig {
		return rpc.ClientConfig{
			Target:  target,
			BaseURL: baseURL,
			Timeout: cfg.RPC.Timeout,
			Metrics: m,
		}
	}

	g := gateway.New(gateway.Config{
		App:      cfg,
		Log:      log,
		Metrics:  m,
		Auth:     rpc.NewAuthClient(clientCfg("auth", services.Auth.URL)),
		Projects: rpc.NewProjectClient(clientCfg("project", services.Project.URL)),
		Tasks:    rpc.NewTaskClient(clientCfg("task", services.Task.URL)),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         services.Gateway.Addr(),
		Handler:      g.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
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
