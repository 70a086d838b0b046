package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studybot/apperror"
	"studybot/transcript"
	"studybot/types"
)

type fakeResolver struct {
	result   *transcript.Transcript
	err      error
	videoID  string
	deadline bool
}

func (f *fakeResolver) Resolve(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	f.videoID = videoID
	_, f.deadline = ctx.Deadline()
	return f.result, f.err
}

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}
func (f *fakeGenerator) Model() string { return "gemini-2.0-flash" }
func (f *fakeGenerator) Close() error  { return nil }

type fakeArchive struct {
	saved []*types.Summary
	err   error
}

func (f *fakeArchive) Save(ctx context.Context, s *types.Summary) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, s)
	return "summaries/" + s.VideoID + "/" + s.ID + ".json", nil
}

type fakePublisher struct {
	events []types.SummaryEvent
	err    error
}

func (f *fakePublisher) PublishSummary(ctx context.Context, ev types.SummaryEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

func holaResolver() *fakeResolver {
	return &fakeResolver{result: &transcript.Transcript{
		VideoID: "ABC123", Text: "Hola mundo", Source: transcript.SourceWatchPage, Format: transcript.FormatSegments,
	}}
}

func TestSummarizeHappyPath(t *testing.T) {
	resolver := holaResolver()
	gen := &fakeGenerator{text: "#### **Resumen de la Transcripción:**\nSaludo."}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	svc := NewService(resolver, gen, Options{
		TranscriptTimeout: time.Second,
		GenerationTimeout: time.Second,
		Archive:           archive,
		Publisher:         pub,
	})

	got, err := svc.Summarize(context.Background(), "https://www.youtube.com/watch?v=ABC123&t=30")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got.Response != gen.text {
		t.Fatalf("Response = %q; want the model text unmodified", got.Response)
	}
	if resolver.videoID != "ABC123" || !resolver.deadline {
		t.Fatalf("resolver got id %q deadline %v", resolver.videoID, resolver.deadline)
	}
	if !strings.HasSuffix(gen.prompt, "Hola mundo\n") {
		t.Fatalf("prompt does not end with the transcript")
	}
	if got.ID == "" || got.Model != "gemini-2.0-flash" || got.TranscriptFormat != "segments" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if len(archive.saved) != 1 || len(pub.events) != 1 {
		t.Fatalf("archive %d, events %d; want 1, 1", len(archive.saved), len(pub.events))
	}
	if ev := pub.events[0]; ev.ArchiveKey != "summaries/ABC123/"+got.ID+".json" || ev.ResponseChars != len([]rune(gen.text)) {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSummarizeInvalidLink(t *testing.T) {
	resolver := holaResolver()
	svc := NewService(resolver, &fakeGenerator{text: "x"}, Options{})

	_, err := svc.Summarize(context.Background(), "https://youtu.be/ABC123")
	if !errors.Is(err, apperror.ErrInvalidLink) {
		t.Fatalf("err = %v; want invalid link", err)
	}
	if resolver.videoID != "" {
		t.Fatalf("resolver should not be called")
	}
}

func TestSummarizeTranscriptUnavailable(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	resolver := &fakeResolver{err: apperror.New(apperror.KindTranscriptUnavailable, "resolve transcript", errors.New("both failed"))}
	svc := NewService(resolver, gen, Options{})

	_, err := svc.Summarize(context.Background(), "watch?v=abc")
	if !errors.Is(err, apperror.ErrTranscriptUnavailable) {
		t.Fatalf("err = %v; want transcript unavailable", err)
	}
	if gen.prompt != "" {
		t.Fatalf("generator should not be called")
	}
}

func TestSummarizeUnclassifiedResolverError(t *testing.T) {
	svc := NewService(&fakeResolver{err: context.DeadlineExceeded}, &fakeGenerator{}, Options{})
	_, err := svc.Summarize(context.Background(), "watch?v=abc")
	if !errors.Is(err, apperror.ErrTranscriptUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v; want transcript unavailable wrapping deadline", err)
	}
}

func TestSummarizeGenerationFailure(t *testing.T) {
	archive := &fakeArchive{}
	svc := NewService(holaResolver(), &fakeGenerator{err: errors.New("429 quota")}, Options{Archive: archive})

	got, err := svc.Summarize(context.Background(), "watch?v=ABC123")
	if got != nil {
		t.Fatalf("expected no partial result")
	}
	if !errors.Is(err, apperror.ErrGenerationFailure) || !strings.Contains(err.Error(), "429 quota") {
		t.Fatalf("err = %v; want generation failure with cause", err)
	}
	if len(archive.saved) != 0 {
		t.Fatalf("failed summaries must not be archived")
	}
}

func TestSummarizeSideEffectFailuresAreNotSurfaced(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(holaResolver(), &fakeGenerator{text: "ok"}, Options{
		Archive:   &fakeArchive{err: errors.New("access denied")},
		Publisher: pub,
	})

	got, err := svc.Summarize(context.Background(), "watch?v=ABC123")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got.Response != "ok" {
		t.Fatalf("Response = %q", got.Response)
	}
	if len(pub.events) != 1 || pub.events[0].ArchiveKey != "" {
		t.Fatalf("event should still be published without an archive key: %+v", pub.events)
	}
}
