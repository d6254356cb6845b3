package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// slotRecord is the gorm model behind the ledger_slots table.
type slotRecord struct {
	Slot      string `gorm:"primaryKey;size:32"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (slotRecord) TableName() string { return "ledger_slots" }

// GormStore persists slots as rows of a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGorm wraps an open gorm handle and ensures the slot table exists.
func NewGorm(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("migrate ledger_slots: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load returns a slot's payload, or ErrSlotNotFound.
func (g *GormStore) Load(slot string) ([]byte, error) {
	var rec slotRecord
	err := g.db.First(&rec, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return rec.Payload, nil
}

// Save upserts the slot row.
func (g *GormStore) Save(slot string, data []byte) error {
	rec := slotRecord{Slot: slot, Payload: data, UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Connect opens a postgres connection for the slot store.
func Connect(databaseURL, appEnv string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}
