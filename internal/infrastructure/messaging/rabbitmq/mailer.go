package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "shop.events"

	// Minimum window to wait for Return / Confirm.
	publishWait = 500 * time.Millisecond
)

type verifyEmailEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type passwordResetEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Mailer implements auth.Mailer by publishing email-request events to a
// topic exchange; a downstream notification worker renders and sends the
// actual mail. Publishes use confirm mode plus mandatory routing so a
// missing binding surfaces as an error instead of silence.
type Mailer struct {
	url         string
	exchange    string
	frontendURL string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewMailer(url, frontendURL string) (*Mailer, error) {
	m := &Mailer{
		url:         url,
		exchange:    DefaultExchange,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
	if err := m.connect(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetConn()
	return nil
}

// ---- auth.Mailer ----

func (m *Mailer) SendVerificationEmail(ctx context.Context, email, plainToken, name string) error {
	return m.publishJSON(ctx, "auth.email.verify.requested", verifyEmailEvent{
		Email: email,
		Name:  name,
		URL:   m.frontendURL + "/verify-email/" + plainToken,
	})
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, plainToken, name string) error {
	return m.publishJSON(ctx, "auth.password.reset.requested", passwordResetEvent{
		Email: email,
		Name:  name,
		URL:   m.frontendURL + "/reset-password/" + plainToken,
	})
}

// ---- internal ----

func (m *Mailer) connect() error {
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	// Declare topic exchange (idempotent).
	if err := ch.ExchangeDeclare(
		m.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	// Enable confirm mode.
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}

	m.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	m.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))

	m.conn = conn
	m.ch = ch
	return nil
}

func (m *Mailer) ensureConnected() error {
	if m.conn != nil && !m.conn.IsClosed() && m.ch != nil {
		return nil
	}
	return m.connect()
}

func (m *Mailer) publishJSON(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	// Ensure there is a deadline to avoid blocking forever.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureConnected(); err != nil {
		return err
	}

	// Drain any stale confirm / return messages to avoid mixing results.
drain:
	for {
		select {
		case <-m.confirmCh:
		case <-m.returnCh:
		default:
			break drain
		}
	}

	if err := m.ch.PublishWithContext(
		ctx,
		m.exchange,
		routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		// Publish call itself failed (channel/connection level error).
		m.resetConn()
		return fmt.Errorf("publish failed: %w", err)
	}

	// Wait for Return / Confirm / Timeout. With mandatory routing the
	// Return frame arrives before the Ack for an unroutable message.
	select {
	case ret := <-m.returnCh:
		return fmt.Errorf(
			"rabbitmq unroutable: key=%s code=%d text=%s",
			routingKey, ret.ReplyCode, ret.ReplyText,
		)

	case conf := <-m.confirmCh:
		select {
		case ret := <-m.returnCh:
			return fmt.Errorf(
				"rabbitmq unroutable: key=%s code=%d text=%s",
				routingKey, ret.ReplyCode, ret.ReplyText,
			)
		default:
		}
		if !conf.Ack {
			return fmt.Errorf("rabbitmq nack: key=%s deliveryTag=%d", routingKey, conf.DeliveryTag)
		}
		return nil

	case <-time.After(publishWait):
		return fmt.Errorf("rabbitmq publish timeout: key=%s", routingKey)

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) resetConn() {
	if m.ch != nil {
		_ = m.ch.Close()
		m.ch = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}
