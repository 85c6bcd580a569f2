// Package events publishes application lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"recruit_backend/internal/logger"

	"github.com/nats-io/nats.go"
)

const (
	SubjectApplicationCreated       = "applications.created"
	SubjectApplicationStatusChanged = "applications.status_changed"
	SubjectJobOrdersExpired         = "job_orders.expired"
)

// Event - конверт любого события
type Event struct {
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type ApplicationCreated struct {
	ApplicationID string `json:"application_id"`
	JobOrderID    string `json:"job_order_id"`
	ApplicantID   string `json:"applicant_id"`
}

type ApplicationStatusChanged struct {
	ApplicationID string `json:"application_id"`
	JobOrderID    string `json:"job_order_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	ChangedBy     string `json:"changed_by"`
}

type JobOrdersExpired struct {
	Count int64 `json:"count"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close()
}

// NATSPublisher публикует события в NATS с префиксом subject
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string, timeout time.Duration) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("recruit-backend"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	full := subject
	if p.prefix != "" {
		full = p.prefix + "." + subject
	}

	data, err := json.Marshal(Event{Subject: subject, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	if err := p.conn.Publish(full, data); err != nil {
		logger.CtxError(ctx, "failed to publish event", "subject", full, "error", err)
		return fmt.Errorf("publishing to NATS: %w", err)
	}

	logger.CtxDebug(ctx, "published event", "subject", full, "size", len(data))
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher используется, когда NATS не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close()                                     {}

// Recorder запоминает события в памяти (для тестов)
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, subject string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Subject: subject, OccurredAt: time.Now().UTC(), Payload: payload})
	return nil
}

func (r *Recorder) Close() {}

// Events возвращает копию записанных событий
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// BySubject - события с указанным subject
func (r *Recorder) BySubject(subject string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out
}

// Emit публикует событие и только логирует ошибку: события не должны
// откатывать уже закоммиченную бизнес-операцию.
func Emit(ctx context.Context, p Publisher, subject string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil {
		logger.EventLog(subject, err)
	}
}
