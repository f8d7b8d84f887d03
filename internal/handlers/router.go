package handlers

import (
	"net/http"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}
	r.Use(h.RequestID())

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions(h.cfg.SessionName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public Routes: everything else sits behind the session gate.
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, "")
		})
		authorized.GET("/checksession", h.CheckSession)
		authorized.DELETE("/logout", h.Logout)

		authorized.GET("/models", listResource(h, modelSpec))
		authorized.POST("/models", createResource(h, modelSpec))
		authorized.GET("/models/:id", getResource(h, modelSpec))
		authorized.PATCH("/models/:id", patchResource(h, modelSpec))
		authorized.DELETE("/models/:id", deleteResource(h, modelSpec))

		authorized.GET("/colors", listResource(h, colorSpec))
		authorized.POST("/colors", createResource(h, colorSpec))
		authorized.GET("/colors/:id", getResource(h, colorSpec))
		authorized.PATCH("/colors/:id", patchResource(h, colorSpec))
		authorized.DELETE("/colors/:id", deleteResource(h, colorSpec))

		authorized.GET("/painted_models", listResource(h, paintedModelSpec))
		authorized.POST("/painted_models", createResource(h, paintedModelSpec))
		authorized.GET("/painted_models/:id", getResource(h, paintedModelSpec))
		authorized.PATCH("/painted_models/:id", patchResource(h, paintedModelSpec))
		authorized.DELETE("/painted_models/:id", deleteResource(h, paintedModelSpec))

		authorized.POST("/save-model", h.SaveModel)
		authorized.PATCH("/save-model", h.UpdateSavedModel)
		authorized.PATCH("/save-model/:id", h.UpdateSavedModel)
	}

	return r
}
