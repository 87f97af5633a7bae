package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

const defaultSendTimeout = 10 * time.Second

// SendFunc delivers a composed message. It must respect ctx.
type SendFunc func(ctx context.Context, msg *mail.Msg) error

type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Timeout bounds dialing and sending one message.
	Timeout time.Duration
}

// Mailer delivers emails over SMTP.
type Mailer struct {
	cfg  MailerConfig
	send SendFunc
	now  func() time.Time
}

func NewMailer(cfg MailerConfig) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSendTimeout
	}
	m := &Mailer{cfg: cfg, now: time.Now}
	m.send = m.dialAndSend
	return m
}

// WithSendFunc replaces the SMTP transport.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, o OrderSummary) Result {
	body, err := renderConfirmation(o)
	if err != nil {
		return failed(err)
	}
	return m.deliver(ctx, o.CustomerEmail, ConfirmationSubject(o), body)
}

func (m *Mailer) SendStatusUpdate(ctx context.Context, o OrderSummary, newStatus string) Result {
	body, err := renderStatusUpdate(o, newStatus)
	if err != nil {
		return failed(err)
	}
	return m.deliver(ctx, o.CustomerEmail, StatusUpdateSubject(o, newStatus), body)
}

// deliver returns once the message is sent, the send fails, or the deadline
// passes, whichever comes first.
func (m *Mailer) deliver(ctx context.Context, to, subject, html string) Result {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	msg := mail.NewMsg(mail.WithEncoding(mail.EncodingQP))
	if err := msg.From(m.cfg.From); err != nil {
		return failed(fmt.Errorf("invalid sender %q: %w", m.cfg.From, err))
	}
	if err := msg.To(to); err != nil {
		return failed(fmt.Errorf("invalid recipient %q: %w", to, err))
	}
	id := uuid.NewString() + "@freshora.com"
	msg.SetMessageIDWithValue(id)
	msg.SetDateWithValue(m.now())
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.send(ctx, msg) }()

	select {
	case err := <-done:
		if err != nil {
			return failed(err)
		}
		return Result{Success: true, MessageID: "<" + id + ">"}
	case <-ctx.Done():
		return failed(fmt.Errorf("send email: %w", ctx.Err()))
	}
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
