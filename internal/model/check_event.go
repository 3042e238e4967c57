package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckEventStatus marks the outcome of a check-creation attempt.
type CheckEventStatus string

const (
	CheckEventCreated CheckEventStatus = "created"
	CheckEventFailed  CheckEventStatus = "failed"
)

// CheckEvent is an audit entry for a check-creation attempt.
// Every attempt is logged regardless of success or failure.
type CheckEvent struct {
	ID           string           `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       string           `json:"userId" gorm:"type:char(36);not null;index"`
	CheckID      string           `json:"checkId,omitempty" gorm:"type:char(36);index"` // empty when nothing was persisted
	Status       CheckEventStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ErrorMessage string           `json:"errorMessage,omitempty" gorm:"type:text"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// BeforeCreate sets a UUID before creating the record.
func (e *CheckEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
