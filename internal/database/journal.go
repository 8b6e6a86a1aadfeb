package database

import (
	"fmt"
	"log"

	"ams-app/internal/models"

	"gorm.io/gorm"
)

// Record appends one entry. Failures are logged and never returned: the
// journal must not break the user's operation.
func (j *Journal) Record(sessionID, entity, recordID, action, details string) {
	if !j.Enabled() {
		return
	}
	entry := newEntry(sessionID, entity, recordID, action, details)
	if err := j.db.Create(&entry).Error; err != nil {
		log.Printf("failed to write activity log for %s %s: %v", entity, recordID, err)
	}
}

// ForSession returns the newest entries of one session first.
func (j *Journal) ForSession(sessionID string, limit int) ([]models.ActivityLog, error) {
	if !j.Enabled() {
		return nil, nil
	}
	var logs []models.ActivityLog
	err := sessionEntries(j.db, sessionID, limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("load activity log: %w", err)
	}
	return logs, nil
}

func newEntry(sessionID, entity, recordID, action, details string) models.ActivityLog {
	return models.ActivityLog{
		SessionID: sessionID,
		Entity:    entity,
		RecordID:  recordID,
		Action:    action,
		Details:   details,
	}
}

func sessionEntries(tx *gorm.DB, sessionID string, limit int) *gorm.DB {
	return tx.
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Limit(limit)
}
