package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
)

// MessageHandler processes one consumed message
type MessageHandler interface {
	// HandleMessage reports whether the message should be marked as consumed.
	// An unmarked message is redelivered after a rebalance or restart.
	HandleMessage(ctx context.Context, key, value []byte) (shouldMark bool, err error)
}

// RejoinBackoff is the pause before rejoining the group after Consume fails
const RejoinBackoff = 5 * time.Second

// Consumer handles Kafka message consumption with pluggable message handling
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan struct{}
	backoff time.Duration
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	// Backoff overrides RejoinBackoff when set
	Backoff time.Duration
}

// NewConsumer connects a consumer group member
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}
	return NewConsumerFromGroup(group, cfg), nil
}

// NewConsumerFromGroup wraps an existing consumer group
func NewConsumerFromGroup(group sarama.ConsumerGroup, cfg ConsumerConfig) *Consumer {
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = RejoinBackoff
	}
	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan struct{}),
		backoff: backoff,
	}
}

// Start joins the group and returns once the first session is set up or
// ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{handler: c.handler, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					log.Println("Kafka consumer stopped")
					return
				}
				log.Printf("❌ Error from Kafka consumer, rejoining in %s: %v", c.backoff, err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(c.backoff):
				}
			}
			if ctx.Err() != nil {
				return
			}
			// a rebalance ended the session; join again
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	select {
	case <-c.ready:
		log.Printf("✅ Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close leaves the group
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// RunUntilSignal starts c and blocks until SIGINT, SIGTERM or ctx is done,
// then waits drain for in-flight messages before closing.
func RunUntilSignal(ctx context.Context, c *Consumer, drain time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigterm)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()
	time.Sleep(drain)

	return c.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	handler MessageHandler
	ready   chan struct{}
	started bool
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	if !h.started {
		h.started = true
		close(h.ready)
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim handles one partition claim, one message at a time
func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			log.Printf("📥 Received Kafka message: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			shouldMark, err := h.handler.HandleMessage(session.Context(), message.Key, message.Value)
			if err != nil {
				log.Printf("❌ Failed to handle message: %v", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes JSON messages into T before handing them on
type TypedMessageHandler[T any] struct {
	// Validate rejects messages that should not be processed
	Validate func(msg *T) error
	// Process handles a valid message
	Process func(ctx context.Context, msg *T) error
	// AlwaysMark marks undecodable and invalid messages so they are skipped
	AlwaysMark bool
}

// HandleMessage implements MessageHandler
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, _ []byte, value []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(value, &msg); err != nil {
		log.Printf("❌ Failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil {
		if err := h.Validate(&msg); err != nil {
			log.Printf("⚠️  Skipping message: %v", err)
			return h.AlwaysMark, nil
		}
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
