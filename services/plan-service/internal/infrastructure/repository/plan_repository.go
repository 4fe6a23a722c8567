package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"learnboard/services/plan-service/internal/domain"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *domain.LearningPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) CountUnfinished(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.LearningPlan{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ListByUser returns the user's plans oldest first. A nil completed means no filter.
func (r *PlanRepository) ListByUser(ctx context.Context, userID int64, completed *bool) ([]domain.LearningPlan, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if completed != nil {
		q = q.Where("completed = ?", *completed)
	}

	var plans []domain.LearningPlan
	err := q.Order("id asc").Find(&plans).Error
	return plans, err
}

// GetForUser hides plans owned by someone else behind ErrPlanNotFound.
func (r *PlanRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.LearningPlan, error) {
	var plan domain.LearningPlan
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Delete removes the plan and its activity logs together.
func (r *PlanRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.LearningPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPlanNotFound
		}
		return tx.Where("plan_id = ?", id).Delete(&domain.ActivityLog{}).Error
	})
}
