package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/meetup-booking/internal/domain"
)

type AttendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepo(db *gorm.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

func (r *AttendanceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.AttendanceRecord{}, &domain.UserStats{})
}

// CheckIn creates today's record and updates the streak stats in one
// transaction. The deterministic record id is the idempotency guard: two
// same-day check-ins racing past the existence check collide on the primary
// key, and the loser surfaces as already-checked-in with no side effects.
func (r *AttendanceRepo) CheckIn(ctx context.Context, userID string, today time.Time) (*domain.AttendanceRecord, *domain.UserStats, error) {
	todayID := domain.AttendanceID(userID, today)
	yesterdayID := domain.AttendanceID(userID, today.AddDate(0, 0, -1))

	var (
		rec   domain.AttendanceRecord
		stats domain.UserStats
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&domain.AttendanceRecord{}).
			Where("id = ?", todayID).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return domain.ErrAlreadyCheckedIn
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stats, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = domain.UserStats{UserID: userID}
		} else if err != nil {
			return err
		}

		consecutive := 0
		var yesterday int64
		if err := tx.Model(&domain.AttendanceRecord{}).
			Where("id = ?", yesterdayID).Count(&yesterday).Error; err != nil {
			return err
		}
		if yesterday > 0 {
			consecutive = stats.ConsecutiveAttendance
		}
		consecutive++

		rec = domain.AttendanceRecord{
			ID:              todayID,
			UserID:          userID,
			Date:            today.Format("2006-01-02"),
			PointsAwarded:   domain.StreakBonus(consecutive),
			ConsecutiveDays: consecutive,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyCheckedIn
			}
			return err
		}

		stats.TotalAttendance++
		stats.ConsecutiveAttendance = consecutive
		if consecutive > stats.LongestStreak {
			stats.LongestStreak = consecutive
		}
		stats.LastAttendance = time.Now().UTC()
		return tx.Save(&stats).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &rec, &stats, nil
}

func (r *AttendanceRepo) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := r.db.WithContext(ctx).First(&stats, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &stats, nil
}
