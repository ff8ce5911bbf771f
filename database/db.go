package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"analysis-web/logger"
	"analysis-web/models"
)

// Open connects to the SQLite database at path and migrates the analysis
// table. Use ":memory:" or "file::memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.AnalysisRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Log.WithField("path", path).Info("database connected successfully")
	return db, nil
}
