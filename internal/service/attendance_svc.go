package service

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/domain"
	"github.com/you/meetup-booking/internal/notify"
)

type AttendanceStore interface {
	CheckIn(ctx context.Context, userID string, today time.Time) (*domain.AttendanceRecord, *domain.UserStats, error)
	Stats(ctx context.Context, userID string) (*domain.UserStats, error)
}

// PointsAdjuster is the slice of the points service the tracker needs for
// the follow-up credit.
type PointsAdjuster interface {
	Adjust(ctx context.Context, userID string, amount int64, dir domain.AdjustDirection, reason string) (*domain.LedgerEntry, error)
}

type CheckInResult struct {
	Record *domain.AttendanceRecord
	Stats  *domain.UserStats
}

type AttendanceSvc struct {
	store  AttendanceStore
	points PointsAdjuster
	disp   notify.Dispatcher
}

func NewAttendanceSvc(store AttendanceStore, points PointsAdjuster, disp notify.Dispatcher) *AttendanceSvc {
	return &AttendanceSvc{store: store, points: points, disp: disp}
}

// CheckIn runs as two independent transactions: the attendance record plus
// stats commit first, then the ledger credit. A crash between the two
// leaves a record without its credit; that window is accepted rather than
// papered over, since a retry would (correctly) hit AlreadyExists.
func (s *AttendanceSvc) CheckIn(ctx context.Context, userID, day string) (*CheckInResult, error) {
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	today, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "day must be YYYY-MM-DD")
	}

	rec, stats, err := s.store.CheckIn(ctx, userID, today)
	if err != nil {
		return nil, asStatus(err)
	}

	if _, err := s.points.Adjust(ctx, userID, rec.PointsAwarded, domain.DirectionAdd, "attendance bonus"); err != nil {
		// The check-in is committed and cannot roll back; failing the call
		// here would invite a retry that must hit AlreadyExists and still
		// never credit. Log and let reconciliation pick it up.
		logBestEffort("attendance ledger credit", err)
	}

	notify.Best(ctx, s.disp, userID, notify.TypeAttendanceBonus,
		"Attendance bonus",
		fmt.Sprintf("Day %d streak: +%d points", rec.ConsecutiveDays, rec.PointsAwarded),
		map[string]string{"date": rec.Date})
	return &CheckInResult{Record: rec, Stats: stats}, nil
}

func (s *AttendanceSvc) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	stats, err := s.store.Stats(ctx, userID)
	if err != nil {
		return nil, asStatus(err)
	}
	return stats, nil
}
