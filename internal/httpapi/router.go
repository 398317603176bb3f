package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/httpapi/handlers"
	"github.com/promptlab/promptlab/internal/httpapi/middleware"
)

// NewRouter wires the full /api surface. Only login and health skip the
// session gate; everything passes the rate limiter.
func NewRouter(h *handlers.Handler, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(h.Log, h.Cfg.DevMode))
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	api := r.Group("/api")
	api.Use(limiter.Middleware())

	api.GET("/health", h.Health)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/status", h.AuthStatus)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(h.Auth))

	protected.GET("/projects", h.ListProjects)
	protected.GET("/projects/:project/tree", h.ProjectTree)
	protected.GET("/projects/:project/file", h.ProjectFile)
	protected.GET("/projects/:project/search", h.ProjectSearch)

	protected.GET("/projects/:project/threads", h.ListThreads)
	protected.POST("/projects/:project/threads", h.CreateThread)
	protected.GET("/projects/:project/threads/:id", h.GetThread)
	protected.PUT("/projects/:project/threads/:id", h.UpdateThread)
	protected.DELETE("/projects/:project/threads/:id", h.DeleteThread)
	protected.POST("/projects/:project/threads/:id/iterations", h.AddIteration)

	protected.GET("/personas", h.ListPersonas)
	protected.GET("/templates", h.ListTemplates)
	protected.POST("/analyze", h.AnalyzeQuery)
	protected.POST("/estimate", h.EstimateCost)

	protected.POST("/llm/chat", h.LLMChat)

	protected.POST("/projects/:project/threads/:id/runs", h.CreateRun)
	protected.GET("/runs/:id", h.GetRun)

	return r
}
