// Package summary turns a video link into the model's study-guide response.
package summary

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"studybot/apperror"
	"studybot/generation"
	"studybot/prompt"
	"studybot/transcript"
	"studybot/types"
)

// TranscriptResolver is satisfied by *transcript.Resolver.
type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID string) (*transcript.Transcript, error)
}

// Archiver stores a completed summary and returns where it was written.
type Archiver interface {
	Save(ctx context.Context, s *types.Summary) (string, error)
}

// Publisher announces a completed summary.
type Publisher interface {
	PublishSummary(ctx context.Context, ev types.SummaryEvent) error
}

// Options holds the optional collaborators and per-stage budgets. Zero timeouts
// mean no extra deadline beyond the caller's context.
type Options struct {
	TranscriptTimeout time.Duration
	GenerationTimeout time.Duration
	Archive           Archiver
	Publisher         Publisher
}

// Service runs link -> video id -> transcript -> prompt -> generation.
type Service struct {
	resolver  TranscriptResolver
	generator generation.Generator
	opts      Options
	now       func() time.Time
}

// NewService creates a Service.
func NewService(resolver TranscriptResolver, generator generation.Generator, opts Options) *Service {
	return &Service{resolver: resolver, generator: generator, opts: opts, now: time.Now}
}

// Summarize returns the model response for link. Errors are *apperror.Error with
// KindInvalidLink, KindTranscriptUnavailable or KindGenerationFailure. Nothing is
// returned on partial success.
func (s *Service) Summarize(ctx context.Context, link string) (*types.Summary, error) {
	videoID, err := transcript.ExtractVideoID(link)
	if err != nil {
		return nil, err
	}

	t, err := s.resolve(ctx, videoID)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, prompt.Build(t.Text))
	if err != nil {
		return nil, err
	}

	result := &types.Summary{
		ID:               uuid.NewString(),
		Link:             link,
		VideoID:          videoID,
		TranscriptSource: t.Source,
		TranscriptFormat: string(t.Format),
		Transcript:       t.Text,
		Model:            s.generator.Model(),
		Response:         text,
		CreatedAt:        s.now().UTC(),
	}
	s.record(context.WithoutCancel(ctx), result)
	return result, nil
}

func (s *Service) resolve(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	if s.opts.TranscriptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TranscriptTimeout)
		defer cancel()
	}
	t, err := s.resolver.Resolve(ctx, videoID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			return nil, apperror.New(apperror.KindTranscriptUnavailable, "resolve transcript", err)
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) generate(ctx context.Context, promptText string) (string, error) {
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerationTimeout)
		defer cancel()
	}
	text, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		return "", apperror.New(apperror.KindGenerationFailure, "generate response", err)
	}
	return text, nil
}

// record archives and announces a summary. Failures are logged only; the client
// already has its response.
func (s *Service) record(ctx context.Context, result *types.Summary) {
	var archiveKey string
	if s.opts.Archive != nil {
		key, err := s.opts.Archive.Save(ctx, result)
		if err != nil {
			log.Printf("⚠️ failed to archive summary %s: %v", result.ID, err)
		} else {
			archiveKey = key
		}
	}
	if s.opts.Publisher != nil {
		if err := s.opts.Publisher.PublishSummary(ctx, types.NewSummaryEvent(result, archiveKey)); err != nil {
			log.Printf("⚠️ failed to publish summary event %s: %v", result.ID, err)
		}
	}
}
