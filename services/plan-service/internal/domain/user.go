package domain

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null;size:50"`
	Email        string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"not null"`
	StreakDays   int    `gorm:"not null"`
	LastActivity *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TouchActivity advances the daily streak: consecutive days extend it, a gap restarts it at
// one, and a second activity on the same day leaves it alone.
func (u *User) TouchActivity(now time.Time) {
	today := dayOf(now, now.Location())
	switch {
	case u.LastActivity == nil:
		u.StreakDays = 1
	case dayOf(*u.LastActivity, now.Location()).Equal(today.AddDate(0, 0, -1)):
		u.StreakDays++
	case !dayOf(*u.LastActivity, now.Location()).Equal(today):
		u.StreakDays = 1
	}
	last := now
	u.LastActivity = &last
}

// CurrentStreak is the streak as of now. A streak whose last activity is older than
// yesterday has lapsed and reads as zero.
func (u *User) CurrentStreak(now time.Time) int {
	if u.LastActivity == nil {
		return 0
	}
	yesterday := dayOf(now, now.Location()).AddDate(0, 0, -1)
	if dayOf(*u.LastActivity, now.Location()).Before(yesterday) {
		return 0
	}
	return u.StreakDays
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
