package models

import "time"

// ActivityLog — запись журнала действий в рамках рабочей сессии.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	SessionID string `gorm:"size:36;index;not null"`
	Entity    string `gorm:"size:50;not null"` // "engagement", "finding", "corrective_action"
	RecordID  string `gorm:"size:16;not null"` // AE001, F001, CA001
	Action    string `gorm:"size:50;not null"` // "create", "status_change"
	Details   string `gorm:"type:text"`
}
