package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you/meetup-booking/internal/payments"
)

type fakeGateway struct {
	fail        bool
	cancelCalls int
	lastAmount  int64
}

func (g *fakeGateway) Confirm(_ context.Context, _, _ string, _ int64) (*payments.ConfirmResult, error) {
	if g.fail {
		return nil, errors.New("gateway 500")
	}
	return &payments.ConfirmResult{Method: "CARD", ApprovedAt: "2025-01-10T12:00:00Z"}, nil
}

func (g *fakeGateway) Cancel(_ context.Context, _, _ string, amount int64) (*payments.CancelResult, error) {
	if g.fail {
		return nil, errors.New("gateway 500")
	}
	g.cancelCalls++
	g.lastAmount = amount
	return &payments.CancelResult{CanceledAt: "2025-01-10T12:00:00Z"}, nil
}

func newPaymentFixture(gw *fakeGateway) *PaymentSvc {
	svc := NewPaymentSvc(gw)
	svc.now = func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestConfirmHappyPath(t *testing.T) {
	svc := newPaymentFixture(&fakeGateway{})
	res, err := svc.Confirm(context.Background(), "pay_1", "order_1", 10000)
	require.NoError(t, err)
	assert.Equal(t, "CARD", res.Method)
}

func TestConfirmGatewayErrorIsInternal(t *testing.T) {
	svc := newPaymentFixture(&fakeGateway{fail: true})
	_, err := svc.Confirm(context.Background(), "pay_1", "order_1", 10000)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRefundFullTwoDaysOut(t *testing.T) {
	gw := &fakeGateway{}
	svc := newPaymentFixture(gw)
	eventDate := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)

	res, err := svc.RefundWithdrawal(context.Background(), "pay_1", 100000, eventDate)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), res.RefundAmount)
	assert.Equal(t, 100, res.RefundRate)
	assert.Equal(t, int64(100000), gw.lastAmount)
}

func TestRefundHalfOneDayOut(t *testing.T) {
	gw := &fakeGateway{}
	svc := newPaymentFixture(gw)
	eventDate := time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)

	res, err := svc.RefundWithdrawal(context.Background(), "pay_1", 100000, eventDate)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), res.RefundAmount)
	assert.Equal(t, 50, res.RefundRate)
}

func TestRefundZeroSkipsGateway(t *testing.T) {
	gw := &fakeGateway{}
	svc := newPaymentFixture(gw)
	eventDate := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	res, err := svc.RefundWithdrawal(context.Background(), "pay_1", 100000, eventDate)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.RefundAmount)
	assert.Equal(t, 0, res.RefundRate)
	assert.Equal(t, 0, gw.cancelCalls)
}

func TestRefundGatewayErrorIsInternal(t *testing.T) {
	svc := newPaymentFixture(&fakeGateway{fail: true})
	eventDate := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	_, err := svc.RefundWithdrawal(context.Background(), "pay_1", 100000, eventDate)
	assert.Equal(t, codes.Internal, status.Code(err))
}
