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

type CouponStore interface {
	Create(ctx context.Context, c *domain.Coupon) error
	ByID(ctx context.Context, id string) (*domain.Coupon, error)
	Redeem(ctx context.Context, ownerID, couponID string, now time.Time) (*domain.Coupon, error)
	ActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]domain.Coupon, error)
}

type IssueInput struct {
	Title        string
	Discount     int64
	DiscountType domain.DiscountType
	MinAmount    int64
	ExpiryDays   int
}

type CouponSvc struct {
	store CouponStore
	disp  notify.Dispatcher
	now   func() time.Time
}

func NewCouponSvc(store CouponStore, disp notify.Dispatcher) *CouponSvc {
	return &CouponSvc{store: store, disp: disp, now: func() time.Time { return time.Now().UTC() }}
}

// Issue is role-gated at the transport layer; the service assumes the
// caller already passed the privilege check.
func (s *CouponSvc) Issue(ctx context.Context, ownerID string, in IssueInput) (*domain.Coupon, error) {
	if ownerID == "" || in.Title == "" {
		return nil, status.Error(codes.InvalidArgument, "owner_id and title are required")
	}
	if !in.DiscountType.Valid() {
		return nil, status.Error(codes.InvalidArgument, "discount_type must be PERCENT or AMOUNT")
	}
	if in.Discount <= 0 || in.ExpiryDays <= 0 {
		return nil, status.Error(codes.InvalidArgument, "discount and expiry_days must be positive")
	}
	c := &domain.Coupon{
		OwnerID:      ownerID,
		Title:        in.Title,
		Discount:     in.Discount,
		DiscountType: in.DiscountType,
		MinAmount:    in.MinAmount,
		ExpiryDate:   s.now().AddDate(0, 0, in.ExpiryDays),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, asStatus(err)
	}
	notify.Best(ctx, s.disp, ownerID, notify.TypeCouponIssued,
		"Coupon issued",
		fmt.Sprintf("%s (valid until %s)", c.Title, c.ExpiryDate.Format("2006-01-02")),
		map[string]string{"coupon_id": c.ID})
	return c, nil
}

// Get is owner-scoped like Redeem: someone else's coupon reads as absent,
// not as forbidden.
func (s *CouponSvc) Get(ctx context.Context, ownerID, couponID string) (*domain.Coupon, error) {
	c, err := s.store.ByID(ctx, couponID)
	if err != nil {
		return nil, asStatus(err)
	}
	if c.OwnerID != ownerID {
		return nil, asStatus(domain.ErrNotFound)
	}
	return c, nil
}

func (s *CouponSvc) Redeem(ctx context.Context, ownerID, couponID string) (*domain.Coupon, error) {
	if couponID == "" {
		return nil, status.Error(codes.InvalidArgument, "coupon_id is required")
	}
	c, err := s.store.Redeem(ctx, ownerID, couponID, s.now())
	if err != nil {
		return nil, asStatus(err)
	}
	return c, nil
}

func (s *CouponSvc) ListActive(ctx context.Context, ownerID string) ([]domain.Coupon, error) {
	out, err := s.store.ActiveByOwner(ctx, ownerID, s.now())
	if err != nil {
		return nil, asStatus(err)
	}
	return out, nil
}
