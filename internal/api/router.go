package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery(), corsMiddleware())

	// Preflights without an Origin header never reach the cors middleware's short circuit.
	r.OPTIONS("/api/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	public := r.Group("/api")
	{
		public.GET("/health", h.Health)
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
	}

	private := r.Group("/api")
	private.Use(requireAuth(h.tokens))
	{
		private.GET("/auth/me", h.Me)

		private.GET("/tasks", h.ListTasks)
		private.POST("/tasks", h.CreateTask)
		private.GET("/tasks/:id", h.GetTask)
		private.PUT("/tasks/:id", h.UpdateTask)
		private.DELETE("/tasks/:id", h.DeleteTask)

		private.GET("/categories", h.ListCategories)
		private.POST("/categories", h.CreateCategory)
		private.PUT("/categories/:id", h.UpdateCategory)
		private.DELETE("/categories/:id", h.DeleteCategory)
	}

	return r
}
