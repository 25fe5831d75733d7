package service

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/domain"
	"github.com/you/meetup-booking/internal/payments"
)

type PaymentResult struct {
	Method     string
	ApprovedAt string
}

type RefundResult struct {
	RefundAmount int64
	RefundRate   int
	CanceledAt   string
}

// PaymentSvc fronts the external gateway. The gateway is authoritative and
// non-retryable from here: any gateway error aborts the operation before a
// ledger or booking mutation happens.
type PaymentSvc struct {
	gw  payments.Gateway
	now func() time.Time
}

func NewPaymentSvc(gw payments.Gateway) *PaymentSvc {
	return &PaymentSvc{gw: gw, now: func() time.Time { return time.Now().UTC() }}
}

func (s *PaymentSvc) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*PaymentResult, error) {
	if paymentKey == "" || orderID == "" {
		return nil, status.Error(codes.InvalidArgument, "payment_key and order_id are required")
	}
	if amount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "amount must be positive")
	}
	res, err := s.gw.Confirm(ctx, paymentKey, orderID, amount)
	if err != nil {
		return nil, status.Error(codes.Internal, "payment gateway error")
	}
	return &PaymentResult{Method: res.Method, ApprovedAt: res.ApprovedAt}, nil
}

// RefundWithdrawal applies the tiered policy and executes the refund. A
// zero refund skips the gateway entirely.
func (s *PaymentSvc) RefundWithdrawal(ctx context.Context, paymentKey string, originalAmount int64, eventDate time.Time) (*RefundResult, error) {
	if paymentKey == "" {
		return nil, status.Error(codes.InvalidArgument, "payment_key is required")
	}
	if originalAmount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "original_amount must be positive")
	}
	refund := domain.CalculateRefund(originalAmount, eventDate, s.now())
	out := &RefundResult{RefundAmount: refund.Amount, RefundRate: refund.Rate}
	if refund.Amount == 0 {
		return out, nil
	}
	res, err := s.gw.Cancel(ctx, paymentKey, "participant withdrawal", refund.Amount)
	if err != nil {
		return nil, status.Error(codes.Internal, "payment gateway error")
	}
	out.CanceledAt = res.CanceledAt
	return out, nil
}
