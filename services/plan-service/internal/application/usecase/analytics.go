package usecase

import (
	"context"
	"math"
	"time"

	"learnboard/services/plan-service/internal/domain"
)

const weekWindow = 7 * 24 * time.Hour

type AnalyticsUseCase struct {
	plans      PlanRepository
	activities ActivityRepository
	now        func() time.Time
}

func NewAnalyticsUseCase(plans PlanRepository, activities ActivityRepository, now func() time.Time) *AnalyticsUseCase {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsUseCase{plans: plans, activities: activities, now: now}
}

func (uc *AnalyticsUseCase) Progress(ctx context.Context, user *domain.User) (*domain.ProgressStats, error) {
	now := uc.now()

	plans, err := uc.plans.ListByUser(ctx, user.ID, nil)
	if err != nil {
		return nil, err
	}
	done, err := uc.activities.CountCompleted(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	times, err := uc.activities.CompletionTimes(ctx, user.ID, now.Add(-weekWindow))
	if err != nil {
		return nil, err
	}

	stats := &domain.ProgressStats{
		TotalPlans: len(plans),
		StreakDays: user.CurrentStreak(now),
		Weekly:     dailyCounts(times, now.Location()),
	}

	total := 0
	for _, p := range plans {
		total += p.Plan.ActivityCount()
		if p.Completed {
			stats.CompletedPlans++
		} else {
			stats.InProgress++
		}
	}
	if total > 0 {
		rate := float64(done) / float64(total) * 100
		stats.CompletionRate = math.Min(math.Round(rate*100)/100, 100)
	}
	return stats, nil
}

// dailyCounts groups ascending timestamps into per-day buckets.
func dailyCounts(times []time.Time, loc *time.Location) []domain.DailyCount {
	out := make([]domain.DailyCount, 0, 7)
	for _, t := range times {
		date := t.In(loc).Format(time.DateOnly)
		if n := len(out); n > 0 && out[n-1].Date == date {
			out[n-1].Count++
			continue
		}
		out = append(out, domain.DailyCount{Date: date, Count: 1})
	}
	return out
}
