package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/domain"
)

type PlanUseCase struct {
	plans         PlanRepository
	generator     Generator
	maxUnfinished int
}

func NewPlanUseCase(plans PlanRepository, generator Generator, maxUnfinished int) *PlanUseCase {
	return &PlanUseCase{plans: plans, generator: generator, maxUnfinished: maxUnfinished}
}

// Generate creates a plan with a fresh schedule, refusing once the user already has
// maxUnfinished open plans.
func (uc *PlanUseCase) Generate(ctx context.Context, user *domain.User, req api.CreatePlanRequest) (*domain.LearningPlan, error) {
	open, err := uc.plans.CountUnfinished(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count unfinished plans: %w", err)
	}
	if uc.maxUnfinished > 0 && open >= int64(uc.maxUnfinished) {
		return nil, &domain.UnfinishedLimitError{Max: uc.maxUnfinished}
	}

	difficulty, err := api.ParseDifficulty(string(req.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrInvalidPayload, err)
	}
	days := req.DurationDays
	if days <= 0 {
		days = api.DefaultDurationDays
	}

	goal := strings.TrimSpace(req.Goal)
	plan := &domain.LearningPlan{
		UserID:       user.ID,
		Goal:         goal,
		Plan:         uc.generator.Generate(goal, difficulty, days),
		Difficulty:   difficulty,
		DurationDays: days,
	}
	if err := uc.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// List returns the user's plans. status "completed" keeps finished plans, any other
// non-empty status keeps unfinished ones.
func (uc *PlanUseCase) List(ctx context.Context, user *domain.User, status string) ([]domain.LearningPlan, error) {
	var completed *bool
	if status != "" {
		c := status == "completed"
		completed = &c
	}
	return uc.plans.ListByUser(ctx, user.ID, completed)
}

func (uc *PlanUseCase) Delete(ctx context.Context, user *domain.User, planID int64) error {
	return uc.plans.Delete(ctx, planID, user.ID)
}

type ActivityUseCase struct {
	plans      PlanRepository
	activities ActivityRepository
	now        func() time.Time
}

func NewActivityUseCase(plans PlanRepository, activities ActivityRepository, now func() time.Time) *ActivityUseCase {
	if now == nil {
		now = time.Now
	}
	return &ActivityUseCase{plans: plans, activities: activities, now: now}
}

// Log records one activity against a plan. Clients that only send activity_id get it
// treated as the plan id.
func (uc *ActivityUseCase) Log(ctx context.Context, user *domain.User, req api.ActivityLogRequest) (*domain.ActivityLog, error) {
	planID := req.PlanID
	if planID == 0 {
		planID = req.ActivityID
	}

	plan, err := uc.plans.GetForUser(ctx, planID, user.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	entry := &domain.ActivityLog{
		UserID:     user.ID,
		PlanID:     plan.ID,
		ActivityID: req.ActivityID,
		Completed:  req.Completed,
		Notes:      req.Notes,
	}
	if req.Completed {
		entry.CompletedAt = &now
	}

	if err := uc.activities.Record(ctx, entry, plan, user, now); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	return entry, nil
}
