// Package publisher mirrors recorded audit entries to Kafka for downstream
// compliance consumers (SIEM, long-retention archival). The mirror sits
// behind the fail-closed store write: by the time an entry reaches the
// mirror it is already durable, so delivery here is best-effort and
// non-blocking. A full buffer drops the entry with a logged warning rather
// than stalling the request path.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"veridoc/internal/audit"
)

const defaultBuffer = 1024

// Kafka is an audit.Mirror producing to a single topic.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
	inbox  chan audit.Entry
}

// NewKafka connects to the brokers and ensures the audit topic exists.
func NewKafka(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchMaxBytes(1<<20),
	)
	if err != nil {
		return nil, err
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, err
	}

	return &Kafka{
		client: client,
		topic:  topic,
		logger: logger,
		inbox:  make(chan audit.Entry, defaultBuffer),
	}, nil
}

// Publish enqueues the entry for mirroring. Never blocks.
func (k *Kafka) Publish(_ context.Context, entry audit.Entry) {
	select {
	case k.inbox <- entry:
	default:
		k.logger.Warn("audit mirror buffer full, dropping entry",
			"action", entry.Action,
			"entity_id", entry.EntityID,
		)
	}
}

// Run consumes the inbox and produces to Kafka until ctx is cancelled.
// Intended to run in its own goroutine (errgroup in cmd/server).
func (k *Kafka) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-k.inbox:
			k.produce(ctx, entry)
		}
	}
}

func (k *Kafka) produce(ctx context.Context, entry audit.Entry) {
	value, err := json.Marshal(mirrorPayload(entry))
	if err != nil {
		k.logger.Error("audit mirror marshal failed", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(entry.EntityID),
		Value: value,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		k.logger.Warn("audit mirror produce failed",
			"error", err,
			"action", entry.Action,
		)
	}
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = k.client.Flush(ctx)
	k.client.Close()
}

type payload struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"`
	ActorID   string         `json:"actor_id,omitempty"`
	ActorName string         `json:"actor_name,omitempty"`
	ActorRole string         `json:"actor_role,omitempty"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func mirrorPayload(entry audit.Entry) payload {
	p := payload{
		ID:        entry.ID.String(),
		Timestamp: entry.Timestamp.Format(time.RFC3339Nano),
		ActorName: entry.ActorName,
		ActorRole: string(entry.ActorRole),
		Action:    entry.Action,
		Entity:    string(entry.Entity),
		EntityID:  entry.EntityID,
		Details:   entry.Details,
		RequestID: entry.RequestID,
	}
	if !entry.ActorID.IsNil() {
		p.ActorID = entry.ActorID.String()
	}
	return p
}
