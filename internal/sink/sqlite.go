package sink

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"plantgen/internal/model"
)

// SQLite persists all six tables into one SQLite database via GORM.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens the database and migrates the schema for every table.
func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&model.Sensor{}, &model.Actuator{}, &model.Reading{},
		&model.Command{}, &model.Diagnostic{}, &model.ControlLoop{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Write(rec model.Tabular) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", rec.TableName(), err)
	}
	return nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
