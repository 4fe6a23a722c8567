package domain

import (
	"time"

	"learnboard/pkg/api"
)

// Schedule maps a day label ("Day 1") to that day's ordered activities.
type Schedule map[string][]string

func (s Schedule) ActivityCount() int {
	n := 0
	for _, acts := range s {
		n += len(acts)
	}
	return n
}

type LearningPlan struct {
	ID           int64          `gorm:"primaryKey"`
	UserID       int64          `gorm:"index;not null"`
	Goal         string         `gorm:"not null"`
	Plan         Schedule       `gorm:"serializer:json;type:text"`
	Progress     float64        `gorm:"not null"`
	Difficulty   api.Difficulty `gorm:"size:20"`
	DurationDays int
	Completed    bool `gorm:"index;not null"`
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecordProgress recomputes progress from the number of completed activity logs. Progress is
// capped at 100 and the plan is marked completed the first time it gets there.
func (p *LearningPlan) RecordProgress(completed int64, now time.Time) {
	total := p.Plan.ActivityCount()
	if total == 0 {
		return
	}
	p.Progress = min(float64(completed)/float64(total)*100, 100)
	if p.Progress >= 100 && !p.Completed {
		p.Completed = true
		at := now
		p.CompletedAt = &at
	}
}

type ActivityLog struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"index;not null"`
	PlanID      int64 `gorm:"index;not null"`
	ActivityID  int64
	Completed   bool
	Notes       *string    `gorm:"type:text"`
	CompletedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
}

type DailyCount struct {
	Date  string
	Count int
}

type ProgressStats struct {
	TotalPlans     int
	CompletedPlans int
	InProgress     int
	CompletionRate float64
	StreakDays     int
	Weekly         []DailyCount
}
