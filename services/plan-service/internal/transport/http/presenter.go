package handlers

import (
	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/domain"
)

func toPlan(p domain.LearningPlan) api.LearningPlan {
	schedule := map[string][]string(p.Plan)
	if schedule == nil {
		schedule = map[string][]string{}
	}
	return api.LearningPlan{
		ID:          p.ID,
		Goal:        p.Goal,
		Plan:        schedule,
		Progress:    p.Progress,
		Completed:   p.Completed,
		CompletedAt: p.CompletedAt,
		Difficulty:  p.Difficulty,
		CreatedAt:   p.CreatedAt,
	}
}

func toActivityLog(a *domain.ActivityLog) api.ActivityLog {
	return api.ActivityLog{
		ID:          a.ID,
		PlanID:      a.PlanID,
		ActivityID:  a.ActivityID,
		Completed:   a.Completed,
		Notes:       a.Notes,
		CompletedAt: a.CompletedAt,
	}
}

func toStats(s *domain.ProgressStats) api.ProgressStats {
	weekly := make([]api.DailyActivity, 0, len(s.Weekly))
	for _, d := range s.Weekly {
		weekly = append(weekly, api.DailyActivity{Date: d.Date, Count: d.Count})
	}
	return api.ProgressStats{
		TotalPlans:     s.TotalPlans,
		CompletedPlans: s.CompletedPlans,
		InProgress:     s.InProgress,
		WeeklyActivity: weekly,
		CompletionRate: s.CompletionRate,
		StreakDays:     s.StreakDays,
	}
}
