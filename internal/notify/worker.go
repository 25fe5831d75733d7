package notify

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/you/meetup-booking/pkg/mq"
)

// Worker drains the notification queue and hands each payload to the
// Notifier. Delivery failure nacks and requeues; a malformed payload is
// acked and dropped, since requeueing it would loop forever.
type Worker struct {
	cons     *mq.Consumer
	notifier Notifier
}

func NewWorker(cons *mq.Consumer, n Notifier) *Worker {
	return &Worker{cons: cons, notifier: n}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(d)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) {
	var n Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		log.Printf("[notify] drop malformed payload key=%s err=%v", d.RoutingKey, err)
		_ = d.Ack(false)
		return
	}
	if err := w.notifier.Deliver(n); err != nil {
		log.Printf("[notify] deliver failed key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
