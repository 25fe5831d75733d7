package domain

import "errors"

// Rule violations surfaced by state transitions. The service layer maps
// these onto wire codes; repositories pass them through untouched.
var (
	ErrNotFound            = errors.New("not_found")
	ErrNotHost             = errors.New("caller_is_not_host")
	ErrHostCannotWithdraw  = errors.New("host_cannot_withdraw")
	ErrNotParticipant      = errors.New("caller_is_not_participant")
	ErrCapacityFull        = errors.New("capacity_full")
	ErrBookingCancelled    = errors.New("booking_cancelled")
	ErrRequestNotPending   = errors.New("request_not_pending")
	ErrDuplicateRequest    = errors.New("duplicate_request")
	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrCouponUsed          = errors.New("coupon_already_used")
	ErrCouponExpired       = errors.New("coupon_expired")
	ErrAlreadyCheckedIn    = errors.New("already_checked_in")
)
