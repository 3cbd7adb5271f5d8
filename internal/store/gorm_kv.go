package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one durable key-value row.
type KVEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"not null"`
}

func (KVEntry) TableName() string { return "kv_entries" }

// GormKV persists entries in the application's sqlite database.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(key string) (string, bool, error) {
	var entry KVEntry
	err := g.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (g *GormKV) Put(key, value string) error {
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&KVEntry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (g *GormKV) Delete(key string) error {
	if err := g.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
