// Package events carries link requests and summary notifications over Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// defaultRetryBackoff is the pause before a partition is rewound after a
// retryable failure.
const defaultRetryBackoff = 5 * time.Second

// MessageHandler processes one link request payload.
//
// shouldMark=true commits the message: it succeeded, or it can never succeed.
// shouldMark=false with an error means the request should run again; the partition
// stops and is rewound to the last committed offset, so nothing after it is committed.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// Consumer runs a MessageHandler over one topic as a member of a consumer group.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler *claimHandler
	topic   string
	groupID string
}

// ConsumerConfig configures the link request consumer.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	// RetryBackoff delays the rewind after a retryable failure. Zero uses 5s.
	RetryBackoff time.Duration
}

func newSaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	return saramaConfig
}

// NewConsumer joins groupID on the given brokers. Consumption starts with Start.
func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	saramaConfig := newSaramaConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		handler: newClaimHandler(config.Handler, config.RetryBackoff),
		topic:   config.Topic,
		groupID: config.GroupID,
	}, nil
}

// Start returns once the first group session is set up. Sessions are rejoined in
// the background until ctx is canceled; a rewound partition resumes this way.
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					log.Println("Kafka consumer stopped")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	select {
	case <-c.handler.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	log.Printf("✅ Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close leaves the group and commits marked offsets.
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// claimHandler implements sarama.ConsumerGroupHandler.
type claimHandler struct {
	messageHandler MessageHandler
	backoff        time.Duration
	ready          chan struct{}
	readyOnce      sync.Once
}

func newClaimHandler(h MessageHandler, backoff time.Duration) *claimHandler {
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &claimHandler{messageHandler: h, backoff: backoff, ready: make(chan struct{})}
}

func (h *claimHandler) Setup(sarama.ConsumerGroupSession) error {
	h.readyOnce.Do(func() { close(h.ready) })
	return nil
}

func (h *claimHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim handles messages in offset order. On a retryable failure it returns
// without marking, which ends the session; the rejoined session starts again at
// the failed message.
func (h *claimHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			log.Printf("📥 Link request: partition=%d offset=%d", message.Partition, message.Offset)

			shouldMark, err := h.messageHandler.HandleMessage(ctx, message.Value)
			if shouldMark {
				session.MarkMessage(message, "")
				continue
			}
			if err == nil {
				err = errors.New("handler neither marked nor failed")
			}

			log.Printf("🔁 Rewinding partition %d to offset %d in %s: %v", message.Partition, message.Offset, h.backoff, err)
			select {
			case <-time.After(h.backoff):
			case <-ctx.Done():
			}
			return fmt.Errorf("partition %d offset %d: %w", message.Partition, message.Offset, err)

		case <-ctx.Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes each payload as JSON into T. Payloads that do not
// decode or fail Validate are marked when AlwaysMark is set, since a retry would
// fail the same way.
type TypedMessageHandler[T any] struct {
	Validate   func(msg *T) bool
	Process    func(ctx context.Context, msg *T) error
	AlwaysMark bool
}

// HandleMessage implements MessageHandler.
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("❌ Undecodable message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
