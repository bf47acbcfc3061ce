// Package gateway implements the public HTTP edge of the platform.
//
// The gateway is the only process clients talk to. It owns the session
// cookie, resolves the caller's identity before any protected route runs,
// and forwards work to the backend services over the internal command
// protocol. It holds no business state of its own.
package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/config"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/metrics"
	"github.com/taskboard/platform/internal/middleware"
	"github.com/taskboard/platform/internal/rpc"
)

// Gateway routes public traffic to the backend services.
type Gateway struct {
	cfg      *config.Config
	log      *logging.Logger
	metrics  *metrics.Metrics
	auth     rpc.AuthClient
	projects rpc.ProjectClient
	tasks    rpc.TaskClient
	limiter  *middleware.RateLimiter
	cookies  *CookieHelper
}

// Config wires the gateway's collaborators.
type Config struct {
	App      *config.Config
	Log      *logging.Logger
	Metrics  *metrics.Metrics
	Auth     rpc.AuthClient
	Projects rpc.ProjectClient
	Tasks    rpc.TaskClient
}

// New constructs a gateway.
func New(cfg Config) *Gateway {
	log := cfg.Log
	if log == nil {
		log = logging.NewDefault("gateway")
	}

	g := &Gateway{
		cfg:      cfg.App,
		log:      log,
		metrics:  cfg.Metrics,
		auth:     cfg.Auth,
		projects: cfg.Projects,
		tasks:    cfg.Tasks,
		cookies:  NewCookieHelper(cfg.App),
	}
	if cfg.App.Gateway.RateLimitEnabled {
		g.limiter = middleware.NewRateLimiter(cfg.App.Gateway.RateLimitPerSec, cfg.App.Gateway.RateLimitBurst)
	}
	return g
}

// Router builds the gin engine with all routes and middleware attached.
func (g *Gateway) Router() *gin.Engine {
	if g.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(g.traceMiddleware())
	r.Use(g.corsMiddleware())
	r.Use(g.rateLimitMiddleware())
	if g.metrics != nil {
		r.Use(g.metricsMiddleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "gateway"})
	})
	if g.metrics != nil {
		r.GET("/metrics", gin.WrapH(g.metrics.Handler()))
	}

	auth := r.Group("/auth")
	auth.POST("/register", g.handleRegister)
	auth.POST("/login", g.handleLogin)
	auth.POST("/logout", g.handleLogout)
	auth.GET("/me", g.requireAuth(), g.handleMe)
	auth.GET("/users", g.requireAuth(), g.handleListUsers)

	projects := r.Group("/projects", g.requireAuth())
	projects.POST("", g.handleCreateProject)
	projects.GET("", g.handleListProjects)
	projects.GET("/my", g.handleMyProjects)
	projects.GET("/:id", g.handleGetProject)
	projects.PATCH("/:id", g.handleUpdateProject)
	projects.GET("/:id/tasks", g.handleListProjectTasks)

	tasks := r.Group("/tasks", g.requireAuth())
	tasks.POST("", g.handleCreateTask)
	tasks.PATCH("/:id/status", g.handleUpdateTaskStatus)

	return r
}
