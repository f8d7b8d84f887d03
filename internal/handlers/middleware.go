package handlers

import (
	"net/http"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthRequired gates every route outside the signup/login allow-list. The
// handler pipeline is halted before the route handler runs.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"Error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"Error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an id that shows up in logs, audit rows
// and the X-Request-ID response header.
func (h *Handler) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// currentUserID reads the session-backed user id. The second return is false
// when no session is established.
func currentUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	v := session.Get("user_id")
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
