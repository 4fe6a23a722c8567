package usecase

import (
	"context"
	"time"

	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/domain"
	"learnboard/services/plan-service/internal/infrastructure/security"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.LearningPlan) error
	CountUnfinished(ctx context.Context, userID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, completed *bool) ([]domain.LearningPlan, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.LearningPlan, error)
	Delete(ctx context.Context, id, userID int64) error
}

type ActivityRepository interface {
	Record(ctx context.Context, entry *domain.ActivityLog, plan *domain.LearningPlan, user *domain.User, now time.Time) error
	CountCompleted(ctx context.Context, userID int64) (int64, error)
	CompletionTimes(ctx context.Context, userID int64, since time.Time) ([]time.Time, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenManager interface {
	Generate(username string, userID int64) (string, error)
	Validate(token string) (security.Claims, error)
}

type Generator interface {
	Generate(goal string, difficulty api.Difficulty, days int) domain.Schedule
}
