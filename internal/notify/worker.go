package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// errUndeliverable marks jobs that must not be requeued.
var errUndeliverable = errors.New("undeliverable email job")

// Worker consumes email jobs from the queue and delivers them through a
// Notifier, normally a Mailer.
type Worker struct {
	id        int
	channel   *amqp.Channel
	queueName string
	sender    Notifier
}

func NewWorker(id int, conn *amqp.Connection, queueName string, sender Notifier) (*Worker, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for worker %d: %w", id, err)
	}
	// one unacknowledged job per worker
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set QoS for worker %d: %w", id, err)
	}
	return &Worker{id: id, channel: ch, queueName: queueName, sender: sender}, nil
}

// Start consumes until the channel or connection is closed.
func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.channel.Close()

	msgs, err := w.channel.Consume(
		w.queueName,
		fmt.Sprintf("mailer-%d", w.id),
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Worker %d failed to register consumer: %v", w.id, err)
		return
	}

	log.Printf("Worker %d started and waiting for email jobs", w.id)
	for msg := range msgs {
		w.processMessage(ctx, msg)
	}
	log.Printf("Worker %d stopped", w.id)
}

func (w *Worker) processMessage(ctx context.Context, msg amqp.Delivery) {
	err := handleJob(ctx, w.sender, msg.Body)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Worker %d: failed to acknowledge message: %v", w.id, ackErr)
		}
	case errors.Is(err, errUndeliverable):
		log.Printf("Worker %d: dropping job: %v", w.id, err)
		msg.Nack(false, false)
	default:
		// retried once by the broker; a redelivered failure is dropped
		log.Printf("Worker %d: send failed (redelivered=%t): %v", w.id, msg.Redelivered, err)
		msg.Nack(false, !msg.Redelivered)
	}
}

func handleJob(ctx context.Context, sender Notifier, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", errUndeliverable, err)
	}

	var res Result
	switch job.Kind {
	case JobOrderConfirmation:
		res = sender.SendOrderConfirmation(ctx, job.Order)
	case JobStatusUpdate:
		res = sender.SendStatusUpdate(ctx, job.Order, job.NewStatus)
	default:
		return fmt.Errorf("%w: unknown kind %q", errUndeliverable, job.Kind)
	}
	if !res.Success {
		return fmt.Errorf("job %s: %s", job.ID, res.Error)
	}
	log.Printf("Delivered %s email for order %s (message %s)", job.Kind, job.Order.Reference(), res.MessageID)
	return nil
}
