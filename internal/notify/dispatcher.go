package notify

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/you/meetup-booking/pkg/mq"
)

// Notification types carried as routing keys on the topic exchange.
const (
	TypeRequestApproved  = "participation.approved"
	TypeRequestRejected  = "participation.rejected"
	TypeMemberWithdrawn  = "participation.withdrawn"
	TypeBookingCancelled = "booking.cancelled"
	TypeAttendanceBonus  = "attendance.bonus"
	TypeCouponIssued     = "coupon.issued"
)

type Notification struct {
	ID     string            `json:"id"`
	UserID string            `json:"user_id"`
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Dispatcher is fire-and-forget fan-out. Callers never treat a dispatch
// failure as a failure of the operation that triggered it.
type Dispatcher interface {
	Notify(ctx context.Context, userID, typ, title, body string, data map[string]string) (string, error)
}

// MQDispatcher publishes notifications to a RabbitMQ topic exchange; a
// worker consumes and delivers them.
type MQDispatcher struct {
	pub *mq.Publisher
}

func NewMQDispatcher(pub *mq.Publisher) *MQDispatcher {
	return &MQDispatcher{pub: pub}
}

func (d *MQDispatcher) Notify(ctx context.Context, userID, typ, title, body string, data map[string]string) (string, error) {
	n := Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	if err := d.pub.PublishJSON(ctx, typ, n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// Best sends via d and swallows the error, logging only. This is the one
// call site pattern the services use.
func Best(ctx context.Context, d Dispatcher, userID, typ, title, body string, data map[string]string) {
	if d == nil {
		return
	}
	if _, err := d.Notify(ctx, userID, typ, title, body, data); err != nil {
		log.Printf("[notify] dispatch failed type=%s user=%s err=%v", typ, userID, err)
	}
}
