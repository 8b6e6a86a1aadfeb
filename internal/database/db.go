package database

import (
	"fmt"
	"log"
	"time"

	"ams-app/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Journal пишет журнал действий в Postgres. Нулевой *Journal — выключенный журнал.
type Journal struct {
	db *gorm.DB
}

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to dsn, retrying while the database comes up, and migrates
// the journal table. An empty dsn returns a disabled journal.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		log.Println("db_dsn is not set, activity journal disabled")
		return nil, nil
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(retryBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	return New(db)
}

// New wraps an open gorm connection and migrates the journal table.
func New(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		return nil, fmt.Errorf("migrate activity log: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}
