package repository

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"learnboard/services/plan-service/internal/domain"
)

// NewDB opens a gorm connection with queries logged through slog, tunes the pool, and
// migrates the schema.
func NewDB(dialector gorm.Dialector, appEnv string, logger *slog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if strings.EqualFold(appEnv, "dev") {
		level = gormlogger.Info
	}

	gormLogger := slogGorm.New(
		slogGorm.WithHandler(logger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(level)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.LearningPlan{}, &domain.ActivityLog{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
