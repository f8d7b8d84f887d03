package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/config"
	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"
	"github.com/lakotacamp/Battle-Brush-Studio/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var handlerDBCounter atomic.Int64

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", handlerDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Model{}, &models.Color{}, &models.PaintedModel{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
		SessionName:   "brush_session",
	}

	audit := services.NewAuditService(db, logger)
	painter := services.NewPainterService(db, logger, audit)

	// Dummy redis client (not connected): cache lookups fail open to the DB
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, db, rdb, painter, audit)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func doJSON(r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signUp creates a user through the API and returns the session cookies.
func signUp(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := doJSON(r, "POST", "/signup", map[string]string{
		"username": username,
		"password": "password123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}
