package domain

import "time"

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountAmount  DiscountType = "AMOUNT"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountAmount
}

type Coupon struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	OwnerID      string       `gorm:"index" json:"owner_id"`
	Title        string       `json:"title"`
	Discount     int64        `json:"discount"`
	DiscountType DiscountType `json:"discount_type"`
	MinAmount    int64        `json:"min_amount"`
	IsUsed       bool         `json:"is_used"`
	ExpiryDate   time.Time    `json:"expiry_date"`
	CreatedAt    time.Time    `json:"created_at"`
	UsedAt       *time.Time   `json:"used_at,omitempty"`
}

// Redeem flips the single-use flag. Must run under the coupon's row lock so
// two concurrent redemptions cannot both observe IsUsed=false.
func (c *Coupon) Redeem(now time.Time) error {
	if c.IsUsed {
		return ErrCouponUsed
	}
	if c.ExpiryDate.Before(now) {
		return ErrCouponExpired
	}
	c.IsUsed = true
	c.UsedAt = &now
	return nil
}
