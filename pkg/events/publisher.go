package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultTopic receives survey events unless configured otherwise.
const DefaultTopic = "survey.events"

// Publisher sends survey events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Config selects and configures a publisher.
type Config struct {
	// Driver is "none", "gochannel" or "kafka". Empty means none.
	Driver  string
	Brokers []string
	Topic   string
	Logger  *slog.Logger
}

// New builds the publisher named by cfg.Driver.
func New(cfg Config) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "none":
		return Nop{}, nil
	case "gochannel":
		return NewChannelPublisher(cfg), nil
	case "kafka":
		return NewKafkaPublisher(cfg)
	default:
		return nil, fmt.Errorf("events: unknown publisher driver %q", cfg.Driver)
	}
}

// WatermillPublisher adapts any watermill message.Publisher.
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topic     string
}

// NewWatermillPublisher wraps publisher, sending to topic.
func NewWatermillPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return &WatermillPublisher{publisher: publisher, logger: logger, topic: topic}
}

// NewKafkaPublisher publishes to the configured Kafka brokers.
func NewKafkaPublisher(cfg Config) (*WatermillPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("events: kafka publisher needs at least one broker")
	}
	logger := loggerOrDiscard(cfg.Logger)
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("events: create kafka publisher: %w", err)
	}
	return NewWatermillPublisher(publisher, cfg.Topic, logger), nil
}

// Topic returns the destination topic.
func (p *WatermillPublisher) Topic() string { return p.topic }

// Publish implements Publisher.
func (p *WatermillPublisher) Publish(ctx context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("events: event is required")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("survey", event.Survey)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("failed to publish survey event", "event_id", event.ID, "event_type", event.Type, "error", err)
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}
	p.logger.Info("published survey event", "event_id", event.ID, "event_type", event.Type, "topic", p.topic)
	return nil
}

// Close releases the underlying publisher.
func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// ChannelPublisher publishes to an in-process watermill channel that
// subscribers can read from, for single binary deployments and tests.
type ChannelPublisher struct {
	*WatermillPublisher
	channel *gochannel.GoChannel
}

// NewChannelPublisher builds an in-process publisher.
func NewChannelPublisher(cfg Config) *ChannelPublisher {
	logger := loggerOrDiscard(cfg.Logger)
	channel := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
	return &ChannelPublisher{
		WatermillPublisher: NewWatermillPublisher(channel, cfg.Topic, logger),
		channel:            channel,
	}
}

// Subscribe returns the messages published from now on.
func (p *ChannelPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	messages, err := p.channel.Subscribe(ctx, p.topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe %s: %w", p.topic, err)
	}
	return messages, nil
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, *Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("events: event is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// Close implements Publisher.
func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
