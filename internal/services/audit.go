package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lakotacamp/Battle-Brush-Studio/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// AuditService records account and save-model actions asynchronously so the
// request path never waits on an audit insert.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	channel chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		channel: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.channel:
			s.enrichEntry(&entry)
			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "error", err, "action", entry.Action)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

// LogAction queues an audit entry. Entries are dropped when the channel is
// full rather than blocking the handler.
func (s *AuditService) LogAction(userID *uint, action, entityID string, details interface{}, ip, userAgent, requestID string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(detailBytes),
		IPAddress: ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Timestamp: time.Now(),
	}

	select {
	case s.channel <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}

func (s *AuditService) enrichEntry(entry *models.AuditLog) {
	if entry.UserAgent == "" {
		return
	}
	ua := user_agent.New(entry.UserAgent)
	browserName, browserVer := ua.Browser()
	entry.Browser = browserName + " " + browserVer
	entry.OS = ua.OS()
}
