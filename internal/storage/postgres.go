package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntryModel maps to the kv_entries table.
type kvEntryModel struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntryModel) TableName() string {
	return "kv_entries"
}

// PostgresKV stores entries in PostgreSQL through gorm.
type PostgresKV struct {
	db *gorm.DB
}

// NewPostgresKV opens the database and verifies the connection.
func NewPostgresKV(ctx context.Context, databaseURL string) (*PostgresKV, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresKV{db: db}, nil
}

// Migrate creates the kv_entries table.
func (s *PostgresKV) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&kvEntryModel{}); err != nil {
		return fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return nil
}

func (s *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var record kvEntryModel
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return record.Value, true, nil
}

func (s *PostgresKV) Set(ctx context.Context, key, value string) error {
	record := kvEntryModel{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&kvEntryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
