package models

// GORM models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Operations recorded in the activity log.
const (
	OperationChat        = "chat"
	OperationEvaluations = "evaluations"
	OperationUpload      = "upload"
)

// Request outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RequestLog records one backend call made on behalf of a browser session.
type RequestLog struct {
	BaseModel
	SessionID      string `json:"session_id" gorm:"index;not null"`
	Operation      string `json:"operation" gorm:"not null;check:operation IN ('chat','evaluations','upload')"`
	Mode           string `json:"mode"`
	Status         string `json:"status" gorm:"not null;check:status IN ('ok','error')"`
	ResponseTimeMs int    `json:"response_time_ms"`
	ErrorMessage   string `json:"error_message"`
}

// RequestLogRepository persists activity log entries.
type RequestLogRepository interface {
	Create(entry *RequestLog) error
}

func (RequestLog) TableName() string { return "request_logs" }

func (r *RequestLog) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	switch r.Operation {
	case OperationChat, OperationEvaluations, OperationUpload:
	default:
		return fmt.Errorf("invalid operation: %s", r.Operation)
	}
	if r.Status != StatusOK && r.Status != StatusError {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return nil
}

func (r *RequestLog) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}
