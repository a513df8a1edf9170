package handlers

import (
	"net/http"

	"task_manager/internal/logger"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options controls how routes are mounted.
type Options struct {
	// BasePath prefixes the auth, task and stats routes, e.g. "/api".
	BasePath       string
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestLogger, metricsMiddleware, corsMiddleware(h.opts.AllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	api := router.Group(h.opts.BasePath)
	h.registerAuthRoutes(api)
	h.registerTaskRoutes(api)
	h.registerStatsRoutes(api)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerTaskRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks", h.userIdMiddleware)
	{
		tasks.GET("", h.listTasks)
		tasks.POST("", h.createTask)
		tasks.PUT("/:id", h.updateTask)
		tasks.DELETE("/:id", h.deleteTask)
	}
}

func (h *Handler) registerStatsRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats", h.userIdMiddleware)
	{
		stats.GET("/user", h.userStats)
		stats.GET("/productivity", h.productivity)
	}
}

// @Summary      Liveness banner
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "API is running..."
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
}
