// internal/services/activity.go
package services

import (
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/sirupsen/logrus"
)

// ActivityService records backend calls made on behalf of a session.
// A nil *ActivityService, or one without a repository, records nothing.
type ActivityService struct {
	repo   models.RequestLogRepository
	logger *logrus.Logger
}

func NewActivityService(repo models.RequestLogRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		logger: logger,
	}
}

// Record stores one call. Failures are logged and otherwise ignored.
func (s *ActivityService) Record(sessionID, operation, mode string, started time.Time, callErr error) {
	if s == nil || s.repo == nil {
		return
	}

	entry := &models.RequestLog{
		SessionID:      sessionID,
		Operation:      operation,
		Mode:           mode,
		Status:         models.StatusOK,
		ResponseTimeMs: int(time.Since(started).Milliseconds()),
	}
	if callErr != nil {
		entry.Status = models.StatusError
		entry.ErrorMessage = callErr.Error()
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"operation":  operation,
		}).Warn("Failed to record activity")
	}
}
