package service

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/domain"
)

type PointsStore interface {
	Adjust(ctx context.Context, userID string, amount int64, dir domain.AdjustDirection, reason string) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (int64, error)
	History(ctx context.Context, userID string, page, size int32) ([]domain.LedgerEntry, int64, error)
}

type PointsSvc struct {
	store PointsStore
}

func NewPointsSvc(store PointsStore) *PointsSvc {
	return &PointsSvc{store: store}
}

// Adjust is not idempotent; callers needing exactly-once semantics must
// carry their own dedup key (the attendance tracker does, via its
// deterministic record id).
func (s *PointsSvc) Adjust(ctx context.Context, userID string, amount int64, dir domain.AdjustDirection, reason string) (*domain.LedgerEntry, error) {
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	if amount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "amount must be positive")
	}
	if dir != domain.DirectionAdd && dir != domain.DirectionSubtract {
		return nil, status.Error(codes.InvalidArgument, "direction must be ADD or SUBTRACT")
	}
	entry, err := s.store.Adjust(ctx, userID, amount, dir, reason)
	if err != nil {
		return nil, asStatus(err)
	}
	return entry, nil
}

func (s *PointsSvc) Balance(ctx context.Context, userID string) (int64, error) {
	bal, err := s.store.Balance(ctx, userID)
	if err != nil {
		return 0, asStatus(err)
	}
	return bal, nil
}

func (s *PointsSvc) History(ctx context.Context, userID string, page, size int32) ([]domain.LedgerEntry, int64, error) {
	out, total, err := s.store.History(ctx, userID, page, size)
	if err != nil {
		return nil, 0, asStatus(err)
	}
	return out, total, nil
}

func logBestEffort(what string, err error) {
	log.Printf("[core] best-effort %s failed: %v", what, err)
}
