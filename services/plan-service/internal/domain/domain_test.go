package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int, hour int) time.Time {
	return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestUser_TouchActivity(t *testing.T) {
	tests := []struct {
		name   string
		last   *time.Time
		streak int
		want   int
	}{
		{name: "first activity", last: nil, streak: 0, want: 1},
		{name: "yesterday extends", last: ptr(day(9, 22)), streak: 4, want: 5},
		{name: "same day keeps", last: ptr(day(10, 8)), streak: 4, want: 4},
		{name: "gap restarts", last: ptr(day(7, 12)), streak: 9, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{StreakDays: tt.streak, LastActivity: tt.last}
			u.TouchActivity(day(10, 18))

			assert.Equal(t, tt.want, u.StreakDays)
			assert.Equal(t, day(10, 18), *u.LastActivity)
		})
	}
}

func TestUser_CurrentStreak(t *testing.T) {
	u := &User{StreakDays: 3, LastActivity: ptr(day(9, 10))}
	assert.Equal(t, 3, u.CurrentStreak(day(10, 1)))
	assert.Equal(t, 0, u.CurrentStreak(day(11, 1)))
	assert.Equal(t, 0, (&User{}).CurrentStreak(day(10, 1)))
}

func TestLearningPlan_RecordProgress(t *testing.T) {
	p := &LearningPlan{Plan: Schedule{"Day 1": {"a", "b"}, "Day 2": {"c", "d"}}}

	p.RecordProgress(1, day(1, 0))
	assert.Equal(t, 25.0, p.Progress)
	assert.False(t, p.Completed)

	p.RecordProgress(5, day(2, 0))
	assert.Equal(t, 100.0, p.Progress)
	assert.True(t, p.Completed)
	assert.Equal(t, day(2, 0), *p.CompletedAt)

	p.RecordProgress(6, day(3, 0))
	assert.Equal(t, day(2, 0), *p.CompletedAt, "completion time is set once")
}

func TestLearningPlan_RecordProgressEmptySchedule(t *testing.T) {
	p := &LearningPlan{}
	p.RecordProgress(3, day(1, 0))
	assert.Zero(t, p.Progress)
	assert.False(t, p.Completed)
}

func TestUnfinishedLimitError(t *testing.T) {
	var err error = &UnfinishedLimitError{Max: 3}
	assert.ErrorIs(t, err, ErrTooManyUnfinished)
	assert.Equal(t, "Maximum 3 unfinished plans allowed", err.Error())
}

func ptr[T any](v T) *T { return &v }
