package rpc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/httputil"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/metrics"
	"github.com/taskboard/platform/internal/middleware"
)

// Endpoint binds one command to its typed handler.
type Endpoint struct {
	Command Command
	handler func(ctx context.Context, payload json.RawMessage) (interface{}, error)
}

// Typed builds an endpoint whose payload and result are concrete types. The
// dispatch table stays a closed set: a command is either registered here or
// it does not exist.
func Typed[Req any, Resp any](cmd Command, fn func(ctx context.Context, req Req) (Resp, error)) Endpoint {
	return Endpoint{
		Command: cmd,
		handler: func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var req Req
			if len(payload) > 0 {
				if err := json.Unmarshal(payload, &req); err != nil {
					return nil, errors.Validation("malformed payload", nil)
				}
			}
			return fn(ctx, req)
		},
	}
}

// ServerConfig wires the shared pieces of an RPC server.
type ServerConfig struct {
	Service string
	Log     *logging.Logger
	Metrics *metrics.Metrics
}

// NewServer mounts the endpoints as POST /rpc/<command> routes plus the
// standard /health and /metrics endpoints.
func NewServer(cfg ServerConfig, endpoints []Endpoint) http.Handler {
	log := cfg.Log
	if log == nil {
		log = logging.NewDefault(cfg.Service)
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler(cfg.Service)).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	for _, ep := range endpoints {
		r.HandleFunc("/rpc/"+string(ep.Command), commandHandler(ep, log)).Methods(http.MethodPost)
	}

	r.Use(middleware.LoggingMiddleware(log))
	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Service, cfg.Metrics))
	}
	return r
}

func commandHandler(ep Endpoint, log *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload json.RawMessage
		if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
			writeFault(w, errors.Validation("malformed payload", nil))
			return
		}

		result, err := ep.handler(r.Context(), payload)
		if err != nil {
			se := errors.Ensure(err)
			if se.HTTPStatus >= http.StatusInternalServerError {
				log.WithContext(r.Context()).WithError(err).
					WithField("command", string(ep.Command)).Error("command failed")
			}
			writeFault(w, se)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func writeFault(w http.ResponseWriter, se *errors.ServiceError) {
	httputil.WriteJSON(w, se.HTTPStatus, Fault{
		Status:  se.HTTPStatus,
		Message: se.Message,
		Errors:  se.Fields,
	})
}

func healthHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": service,
		})
	}
}
