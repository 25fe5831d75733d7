package domain

import (
	"math"
	"time"
)

type Refund struct {
	Amount int64
	Rate   int
}

// CalculateRefund applies the tiered cancellation policy. Pure: callers pass
// the clock in, which keeps the tiers testable at exact boundaries.
//
//	>= 2 days before the event: full refund
//	>= 1 day before:            half refund
//	later:                      nothing
func CalculateRefund(originalAmount int64, eventDate, now time.Time) Refund {
	diffDays := int(math.Ceil(eventDate.Sub(now).Hours() / 24))
	switch {
	case diffDays >= 2:
		return Refund{Amount: originalAmount, Rate: 100}
	case diffDays >= 1:
		return Refund{Amount: originalAmount / 2, Rate: 50}
	default:
		return Refund{Amount: 0, Rate: 0}
	}
}

// PlatformFee is the 5% cut, floored.
func PlatformFee(amount int64) int64 {
	return amount * 5 / 100
}
