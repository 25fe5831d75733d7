package service

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/domain"
)

// asStatus maps domain rule violations onto stable wire codes. Anything
// unrecognized (store failure, gateway failure) surfaces as Internal.
func asStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok && status.Code(err) != codes.Unknown {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, "resource not found")
	case errors.Is(err, domain.ErrNotHost):
		return status.Error(codes.PermissionDenied, "caller is not the host")
	case errors.Is(err, domain.ErrCapacityFull):
		return status.Error(codes.FailedPrecondition, "booking capacity is full")
	case errors.Is(err, domain.ErrBookingCancelled):
		return status.Error(codes.FailedPrecondition, "booking is cancelled")
	case errors.Is(err, domain.ErrHostCannotWithdraw):
		return status.Error(codes.FailedPrecondition, "host must cancel, not withdraw")
	case errors.Is(err, domain.ErrNotParticipant):
		return status.Error(codes.FailedPrecondition, "caller is not a participant")
	case errors.Is(err, domain.ErrRequestNotPending):
		return status.Error(codes.FailedPrecondition, "request is not pending")
	case errors.Is(err, domain.ErrDuplicateRequest):
		return status.Error(codes.FailedPrecondition, "an open request already exists")
	case errors.Is(err, domain.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, "insufficient balance")
	case errors.Is(err, domain.ErrCouponUsed):
		return status.Error(codes.FailedPrecondition, "coupon already used")
	case errors.Is(err, domain.ErrCouponExpired):
		return status.Error(codes.FailedPrecondition, "coupon expired")
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return status.Error(codes.AlreadyExists, "already checked in today")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
