package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	JobOrderConfirmation = "order_confirmation"
	JobStatusUpdate      = "status_update"
)

// EmailJob is the message published to the email queue.
type EmailJob struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Order     OrderSummary `json:"order"`
	NewStatus string       `json:"newStatus,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Publisher puts an encoded job on the queue.
type Publisher interface {
	Publish(ctx context.Context, messageID string, body []byte) error
}

// QueueNotifier hands emails to the mailer worker through RabbitMQ.
type QueueNotifier struct {
	pub Publisher
}

func NewQueueNotifier(pub Publisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

func (n *QueueNotifier) SendOrderConfirmation(ctx context.Context, o OrderSummary) Result {
	return n.enqueue(ctx, EmailJob{Kind: JobOrderConfirmation, Order: o})
}

func (n *QueueNotifier) SendStatusUpdate(ctx context.Context, o OrderSummary, newStatus string) Result {
	return n.enqueue(ctx, EmailJob{Kind: JobStatusUpdate, Order: o, NewStatus: newStatus})
}

func (n *QueueNotifier) enqueue(ctx context.Context, job EmailJob) Result {
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC()

	body, err := json.Marshal(job)
	if err != nil {
		return failed(fmt.Errorf("failed to marshal email job: %w", err))
	}
	if err := n.pub.Publish(ctx, job.ID, body); err != nil {
		return failed(err)
	}
	return Result{Success: true, MessageID: job.ID}
}

var errPoolClosed = errors.New("channel pool is closed")

// pooledChannel is the part of *amqp.Channel the pool uses.
type pooledChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelPool keeps a fixed number of AMQP channel slots on one connection,
// each with the email queue declared. An empty slot is refilled the next time
// it is taken, so a dead channel never shrinks the pool.
type ChannelPool struct {
	slots     chan pooledChannel
	open      func() (pooledChannel, error)
	closeConn func() error
	queueName string
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewChannelPool(url, queueName string, size int) (*ChannelPool, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	open := func() (pooledChannel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		if _, err := DeclareQueue(ch, queueName); err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to declare queue: %w", err)
		}
		return ch, nil
	}
	pool, err := newChannelPool(queueName, size, open, conn.Close)
	if err != nil {
		return nil, err
	}

	log.Printf("Created RabbitMQ channel pool with %d channels", size)
	return pool, nil
}

func newChannelPool(queueName string, size int, open func() (pooledChannel, error), closeConn func() error) (*ChannelPool, error) {
	if size < 1 {
		size = 1
	}
	pool := &ChannelPool{
		slots:     make(chan pooledChannel, size),
		open:      open,
		closeConn: closeConn,
		queueName: queueName,
		timeout:   5 * time.Second,
		done:      make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		ch, err := open()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.slots <- ch
	}
	return pool, nil
}

// Get takes a channel from the pool, waiting for one to be returned when all
// are in use. It gives up when ctx is done or the pool is closed.
func (p *ChannelPool) Get(ctx context.Context) (pooledChannel, error) {
	select {
	case <-p.done:
		return nil, errPoolClosed
	default:
	}

	var ch pooledChannel
	select {
	case ch = <-p.slots:
	case <-p.done:
		return nil, errPoolClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for channel: %w", ctx.Err())
	}

	if ch != nil && !ch.IsClosed() {
		return ch, nil
	}
	fresh, err := p.open()
	if err != nil {
		p.Put(nil)
		return nil, fmt.Errorf("failed to reopen channel: %w", err)
	}
	return fresh, nil
}

// Put returns a channel taken with Get. A nil or dead channel frees its slot
// for a replacement. After Close the channel is closed instead.
func (p *ChannelPool) Put(ch pooledChannel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		if ch != nil {
			ch.Close()
		}
		return
	}
	if ch != nil && ch.IsClosed() {
		ch = nil
	}
	// every Put matches a Get, so a slot is always free
	p.slots <- ch
}

// Publish implements Publisher with a persistent JSON message. Waiting for a
// channel and publishing share one timeout.
func (p *ChannelPool) Publish(ctx context.Context, messageID string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch, err := p.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		ch.Close()
		p.Put(nil)
		return fmt.Errorf("failed to publish email job: %w", err)
	}
	p.Put(ch)
	return nil
}

// Close releases idle channels and the connection. Channels still held by
// in-flight publishes are closed when they are put back.
func (p *ChannelPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

drain:
	for {
		select {
		case ch := <-p.slots:
			if ch != nil {
				ch.Close()
			}
		default:
			break drain
		}
	}
	if p.closeConn != nil {
		p.closeConn()
	}
	log.Println("Closed RabbitMQ channel pool")
}

// DeclareQueue declares the durable email queue. It is idempotent.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}
