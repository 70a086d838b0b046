package events

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"studybot/apperror"
	"studybot/transcript"
	"studybot/types"
)

// Summarizer is satisfied by *summary.Service.
type Summarizer interface {
	Summarize(ctx context.Context, link string) (*types.Summary, error)
}

// Guard claims a video id so duplicate requests are skipped.
// *deduplication.RedisGuard satisfies it.
type Guard interface {
	Claim(ctx context.Context, videoID string) (bool, error)
	Release(ctx context.Context, videoID string) error
}

// NewLinkHandler returns the handler that runs each LinkRequest through svc.
// Links that will not succeed on a retry (bad link, no transcript) are marked and
// dropped. Generation failures return an error, which rewinds the partition so the
// same request runs again. A claim is held only for a video that was summarized;
// every failure releases it. guard may be nil.
func NewLinkHandler(svc Summarizer, guard Guard) *TypedMessageHandler[types.LinkRequest] {
	return &TypedMessageHandler[types.LinkRequest]{
		Validate: func(msg *types.LinkRequest) bool {
			if strings.TrimSpace(msg.Link) == "" {
				log.Printf("❌ Message missing link, skipping")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *types.LinkRequest) error {
			videoID, err := transcript.ExtractVideoID(msg.Link)
			if err != nil {
				log.Printf("⚠️  Dropping link %s: %v", msg.Link, err)
				return nil
			}
			if guard != nil {
				claimed, err := guard.Claim(ctx, videoID)
				if err != nil {
					log.Printf("⚠️  Dedup check failed for %s, summarizing anyway: %v", videoID, err)
				} else if !claimed {
					log.Printf("⏭️  Video %s already summarized recently, skipping", videoID)
					return nil
				}
			}

			log.Printf("🎬 Summarizing link: %s", msg.Link)

			s, err := svc.Summarize(ctx, msg.Link)
			if err != nil {
				if guard != nil {
					if rerr := guard.Release(context.WithoutCancel(ctx), videoID); rerr != nil {
						log.Printf("⚠️  %v", rerr)
					}
				}
				if errors.Is(err, apperror.ErrInvalidLink) || errors.Is(err, apperror.ErrTranscriptUnavailable) {
					log.Printf("⚠️  Dropping link %s: %v", msg.Link, err)
					return nil
				}
				log.Printf("❌ Failed to summarize %s: %v", msg.Link, err)
				return err
			}

			log.Printf("✅ Summarized video %s (%d chars)", s.VideoID, len(s.Response))
			return nil
		},
		AlwaysMark: true,
	}
}

// WorkerConfig holds the worker's Kafka settings.
type WorkerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// Guard is optional
	Guard Guard
	// RetryBackoff is the pause before a failed request runs again
	RetryBackoff time.Duration
}

// RunWorker consumes link requests until ctx is canceled.
func RunWorker(ctx context.Context, cfg WorkerConfig, svc Summarizer) error {
	consumer, err := NewConsumer(ConsumerConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		GroupID:      cfg.GroupID,
		Handler:      NewLinkHandler(svc, cfg.Guard),
		RetryBackoff: cfg.RetryBackoff,
	})
	if err != nil {
		return err
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Println("🛑 Shutting down worker...")
	return nil
}
