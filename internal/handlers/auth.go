package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"
	"github.com/lakotacamp/Battle-Brush-Studio/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const userCacheTTL = 10 * time.Minute

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"Error": "Missing required fields"})
		return
	}

	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"Error": "Username already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to create user"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}
	if err := h.db.Create(&newUser).Error; err != nil {
		// The unique index catches a signup race on the same username.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"Error": "Username already exists"})
		return
	}

	if err := h.establishSession(c, newUser.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to save session"})
		return
	}

	h.auditService.LogAction(&newUser.ID, "SIGNUP", newUser.Username, nil, c.ClientIP(), c.Request.UserAgent(), requestID(c))

	c.JSON(http.StatusCreated, newUser)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Error": "Missing required fields"})
		return
	}

	// One generic failure shape: a caller cannot tell an unknown username
	// from a wrong password.
	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"Error": "Invalid username or password"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"Error": "Invalid username or password"})
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to save session"})
		return
	}

	h.auditService.LogAction(&user.ID, "LOGIN", user.Username, nil, c.ClientIP(), c.Request.UserAgent(), requestID(c))

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	userID, _ := currentUserID(c)

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to clear session"})
		return
	}

	if userID != 0 {
		h.auditService.LogAction(&userID, "LOGOUT", "", nil, c.ClientIP(), c.Request.UserAgent(), requestID(c))
	}

	c.Status(http.StatusNoContent)
}

// CheckSession returns the logged-in user's public projection. User records
// never change after signup, so the lookup is served through a redis
// read-through cache when one is configured.
func (h *Handler) CheckSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"Error": "User session not found"})
		return
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("user:%d", userID)

	if h.rdb != nil {
		if val, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached models.User
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"Error": "User session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Database error"})
		return
	}

	if h.rdb != nil {
		// PasswordHash is json:"-", so the cached projection never holds it.
		data, _ := json.Marshal(user)
		h.rdb.Set(ctx, cacheKey, data, userCacheTTL)
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) establishSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	return session.Save()
}
