package repository

import (
	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"gorm.io/gorm"
)

// RequestLogRepositoryImpl implements RequestLogRepository
type RequestLogRepositoryImpl struct {
	db *gorm.DB
}

func NewRequestLogRepository(db *gorm.DB) models.RequestLogRepository {
	return &RequestLogRepositoryImpl{db: db}
}

func (r *RequestLogRepositoryImpl) Create(entry *models.RequestLog) error {
	return r.db.Create(entry).Error
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	RequestLog models.RequestLogRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		RequestLog: NewRequestLogRepository(db),
	}
}
