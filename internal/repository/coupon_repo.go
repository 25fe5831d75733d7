package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/meetup-booking/internal/domain"
)

type CouponRepo struct{ db *gorm.DB }

func NewCouponRepo(db *gorm.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

func (r *CouponRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Coupon{})
}

func (r *CouponRepo) Create(ctx context.Context, c *domain.Coupon) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CouponRepo) ByID(ctx context.Context, id string) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Redeem reads and flips IsUsed under the coupon's row lock. A plain
// read-then-update here would let two concurrent redemptions both observe
// IsUsed=false and both succeed.
func (r *CouponRepo) Redeem(ctx context.Context, ownerID, couponID string, now time.Time) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, "id = ? AND owner_id = ?", couponID, ownerID).Error; err != nil {
			return notFound(err)
		}
		if err := c.Redeem(now); err != nil {
			return err
		}
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepo) ActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]domain.Coupon, error) {
	var out []domain.Coupon
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_used = ? AND expiry_date >= ?", ownerID, false, now).
		Order("expiry_date ASC").
		Find(&out).Error
	return out, err
}
