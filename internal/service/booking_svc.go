package service

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/domain"
	"github.com/you/meetup-booking/internal/notify"
)

// BookingStore is what the service needs from persistence. Declared here so
// tests can substitute an in-memory implementation.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	Join(ctx context.Context, bookingID, userID string) (*domain.ParticipationRequest, error)
	Approve(ctx context.Context, bookingID, requestID, callerID string) (*domain.Booking, *domain.ParticipationRequest, error)
	Reject(ctx context.Context, bookingID, requestID, callerID string) (*domain.ParticipationRequest, error)
	Withdraw(ctx context.Context, bookingID, callerID string) (*domain.Booking, error)
	MarkWithdrawn(ctx context.Context, bookingID, userID string) error
	Cancel(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error)
	CancelRequests(ctx context.Context, bookingID string) ([]domain.ParticipationRequest, error)
}

type BookingSvc struct {
	store BookingStore
	disp  notify.Dispatcher
}

func NewBookingSvc(store BookingStore, disp notify.Dispatcher) *BookingSvc {
	return &BookingSvc{store: store, disp: disp}
}

func (s *BookingSvc) Create(ctx context.Context, hostID, title string, capacityMax int) (*domain.Booking, error) {
	if hostID == "" || title == "" {
		return nil, status.Error(codes.InvalidArgument, "host_id and title are required")
	}
	if capacityMax < 1 {
		return nil, status.Error(codes.InvalidArgument, "capacity_max must be at least 1")
	}
	b := &domain.Booking{HostID: hostID, Title: title, CapacityMax: capacityMax}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, asStatus(err)
	}
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, asStatus(err)
	}
	return b, nil
}

func (s *BookingSvc) Join(ctx context.Context, bookingID, userID string) (*domain.ParticipationRequest, error) {
	if bookingID == "" {
		return nil, status.Error(codes.InvalidArgument, "booking_id is required")
	}
	req, err := s.store.Join(ctx, bookingID, userID)
	if err != nil {
		return nil, asStatus(err)
	}
	return req, nil
}

func (s *BookingSvc) Approve(ctx context.Context, bookingID, requestID, callerID string) (*domain.Booking, error) {
	if bookingID == "" || requestID == "" {
		return nil, status.Error(codes.InvalidArgument, "booking_id and request_id are required")
	}
	b, req, err := s.store.Approve(ctx, bookingID, requestID, callerID)
	if err != nil {
		return nil, asStatus(err)
	}
	notify.Best(ctx, s.disp, req.UserID, notify.TypeRequestApproved,
		"Participation approved",
		fmt.Sprintf("You are in: %s", b.Title),
		map[string]string{"booking_id": b.ID})
	return b, nil
}

func (s *BookingSvc) Reject(ctx context.Context, bookingID, requestID, callerID string) (*domain.ParticipationRequest, error) {
	if bookingID == "" || requestID == "" {
		return nil, status.Error(codes.InvalidArgument, "booking_id and request_id are required")
	}
	req, err := s.store.Reject(ctx, bookingID, requestID, callerID)
	if err != nil {
		return nil, asStatus(err)
	}
	notify.Best(ctx, s.disp, req.UserID, notify.TypeRequestRejected,
		"Participation rejected",
		"Your request was not accepted.",
		map[string]string{"booking_id": bookingID})
	return req, nil
}

func (s *BookingSvc) Withdraw(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, status.Error(codes.InvalidArgument, "booking_id is required")
	}
	b, err := s.store.Withdraw(ctx, bookingID, callerID)
	if err != nil {
		return nil, asStatus(err)
	}
	// Follow-up outside the capacity transaction; the request row is
	// bookkeeping, so a miss here never rolls back the withdrawal.
	if err := s.store.MarkWithdrawn(ctx, bookingID, callerID); err != nil {
		logBestEffort("mark withdrawn", err)
	}
	notify.Best(ctx, s.disp, b.HostID, notify.TypeMemberWithdrawn,
		"Participant withdrew",
		fmt.Sprintf("A participant left: %s", b.Title),
		map[string]string{"booking_id": b.ID, "user_id": callerID})
	return b, nil
}

func (s *BookingSvc) Cancel(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, status.Error(codes.InvalidArgument, "booking_id is required")
	}
	b, err := s.store.Cancel(ctx, bookingID, callerID, reason)
	if err != nil {
		return nil, asStatus(err)
	}
	// CANCELLED is terminal, so the request fan-out does not need to be
	// atomic with the cancellation itself.
	reqs, err := s.store.CancelRequests(ctx, bookingID)
	if err != nil {
		logBestEffort("cancel requests", err)
	}
	for _, r := range reqs {
		notify.Best(ctx, s.disp, r.UserID, notify.TypeBookingCancelled,
			"Booking cancelled",
			fmt.Sprintf("%s was cancelled: %s", b.Title, reason),
			map[string]string{"booking_id": b.ID})
	}
	return b, nil
}
