// Package api holds the JSON contract shared by the gateway, the dashboard client and the
// plan backend. Every payload crossing a process boundary is one of these types.
package api

import (
	"fmt"
	"time"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// DefaultDurationDays is what the dashboard always submits when generating a plan.
const DefaultDurationDays = 30

// ParseDifficulty accepts the three known levels; an empty string means Intermediate.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case "":
		return Intermediate, nil
	case Beginner, Intermediate, Advanced:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

type LearningPlan struct {
	ID          int64               `json:"id" validate:"required"`
	Goal        string              `json:"goal" validate:"required"`
	Plan        map[string][]string `json:"plan"`
	Progress    float64             `json:"progress" validate:"gte=0,lte=100"`
	Completed   bool                `json:"completed"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	Difficulty  Difficulty          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	CreatedAt   time.Time           `json:"created_at"`
}

type DailyActivity struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Count int    `json:"count" validate:"gte=0"`
}

type ProgressStats struct {
	TotalPlans     int             `json:"total_plans" validate:"gte=0"`
	CompletedPlans int             `json:"completed_plans" validate:"gte=0"`
	InProgress     int             `json:"in_progress" validate:"gte=0"`
	WeeklyActivity []DailyActivity `json:"weekly_activity" validate:"dive"`
	CompletionRate float64         `json:"completion_rate" validate:"gte=0,lte=100"`
	StreakDays     int             `json:"streak_days" validate:"gte=0"`
}

// ActivityLog is the record returned after logging an activity completion.
type ActivityLog struct {
	ID          int64      `json:"id"`
	PlanID      int64      `json:"plan_id"`
	ActivityID  int64      `json:"activity_id" validate:"required"`
	Completed   bool       `json:"completed"`
	Notes       *string    `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePlanRequest struct {
	Goal         string     `json:"goal" validate:"required,notblank"`
	Difficulty   Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationDays int        `json:"duration_days,omitempty" validate:"omitempty,min=1,max=365"`
}

// ActivityLogRequest marks one activity as done. PlanID is optional; older clients only send
// ActivityID and the backend then treats it as the plan identifier.
type ActivityLogRequest struct {
	PlanID     int64   `json:"plan_id,omitempty" validate:"gte=0"`
	ActivityID int64   `json:"activity_id" validate:"required"`
	Completed  bool    `json:"completed"`
	Notes      *string `json:"notes,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
}

type VerifyResponse struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorEnvelope is the only error shape the gateway ever returns.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// BackendError is the plan backend's error body.
type BackendError struct {
	Detail string `json:"detail"`
}
