package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"learnboard/services/plan-service/internal/domain"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Record stores the log entry, recomputes the plan's progress when the entry is a completion,
// and advances the user's streak, all in one transaction.
func (r *ActivityRepository) Record(ctx context.Context, entry *domain.ActivityLog, plan *domain.LearningPlan, user *domain.User, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if entry.Completed {
			var done int64
			err := tx.Model(&domain.ActivityLog{}).
				Where("plan_id = ? AND completed = ?", plan.ID, true).
				Count(&done).Error
			if err != nil {
				return err
			}

			plan.RecordProgress(done, now)
			err = tx.Model(plan).
				Select("progress", "completed", "completed_at").
				Updates(plan).Error
			if err != nil {
				return err
			}
		}

		user.TouchActivity(now)
		return tx.Model(user).
			Select("streak_days", "last_activity").
			Updates(user).Error
	})
}

func (r *ActivityRepository) CountCompleted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityLog{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CompletionTimes lists completion timestamps at or after since, oldest first.
func (r *ActivityRepository) CompletionTimes(ctx context.Context, userID int64, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityLog{}).
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, since).
		Order("completed_at asc").
		Pluck("completed_at", &times).Error
	return times, err
}
