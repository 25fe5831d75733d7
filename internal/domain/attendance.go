package domain

import (
	"fmt"
	"time"
)

// AttendanceRecord is one check-in per user per calendar day. The primary key
// is deterministic, so the record doubles as its own idempotency token: a
// second insert for the same user/day collides instead of duplicating.
type AttendanceRecord struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index" json:"user_id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	PointsAwarded   int64     `json:"points_awarded"`
	ConsecutiveDays int       `json:"consecutive_days"`
	CreatedAt       time.Time `json:"created_at"`
}

type UserStats struct {
	UserID                string    `gorm:"primaryKey" json:"user_id"`
	ConsecutiveAttendance int       `json:"consecutive_attendance"`
	LongestStreak         int       `json:"longest_streak"`
	TotalAttendance       int       `json:"total_attendance"`
	LastAttendance        time.Time `json:"last_attendance"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func AttendanceID(userID string, day time.Time) string {
	return fmt.Sprintf("%s:%s", userID, day.Format("2006-01-02"))
}

// StreakBonus returns the points for the nth consecutive day.
// First matching rule wins.
func StreakBonus(consecutiveDays int) int64 {
	switch {
	case consecutiveDays == 7:
		return 500
	case consecutiveDays == 30:
		return 2000
	case consecutiveDays%7 == 0:
		return 300
	default:
		return 100
	}
}
