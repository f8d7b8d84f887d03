package handlers

import (
	"log/slog"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/config"
	"github.com/lakotacamp/Battle-Brush-Studio/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	rdb            *redis.Client
	painterService *services.PainterService
	auditService   *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	painterService *services.PainterService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		rdb:            rdb,
		painterService: painterService,
		auditService:   auditService,
	}
}
