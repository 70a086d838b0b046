package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studybot/apperror"
)

type fakeSource struct {
	name   string
	result *Transcript
	err    error
	calls  int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	f.calls++
	return f.result, f.err
}

func TestResolvePrimarySuccessShortCircuits(t *testing.T) {
	primary := &fakeSource{name: "primary", result: &Transcript{Text: "Hola mundo", Format: FormatSegments}}
	fallback := &fakeSource{name: "fallback", result: &Transcript{Text: "unused"}}

	got, err := NewResolver(primary, fallback).Resolve(context.Background(), "vid")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Text != "Hola mundo" {
		t.Fatalf("Text = %q", got.Text)
	}
	if got.Source != "primary" || got.VideoID != "vid" {
		t.Fatalf("Source/VideoID not filled: %+v", got)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times; want 0", fallback.calls)
	}
}

func TestResolveFallsBackOnError(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("transcripts disabled")}
	fallback := &fakeSource{name: "fallback", result: &Transcript{Text: "1\n00:00:00,000 --> 00:00:01,000\nHola\n", Format: FormatRaw}}

	got, err := NewResolver(primary, fallback).Resolve(context.Background(), "vid")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Source != "fallback" || got.Format != FormatRaw {
		t.Fatalf("unexpected transcript: %+v", got)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("calls = %d/%d; want 1/1", primary.calls, fallback.calls)
	}
}

func TestResolveAllFail(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("blocked")}
	fallback := &fakeSource{name: "fallback", err: errors.New("no caption tracks")}

	_, err := NewResolver(primary, fallback).Resolve(context.Background(), "vid")
	if !errors.Is(err, apperror.ErrTranscriptUnavailable) {
		t.Fatalf("err = %v; want transcript unavailable", err)
	}
	for _, want := range []string{"primary: blocked", "fallback: no caption tracks"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestResolveNilTranscriptIsFailure(t *testing.T) {
	empty := &fakeSource{name: "empty"}
	_, err := NewResolver(empty).Resolve(context.Background(), "vid")
	if !errors.Is(err, apperror.ErrTranscriptUnavailable) {
		t.Fatalf("err = %v; want transcript unavailable", err)
	}
}

func TestResolveNoSources(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), "vid")
	if !errors.Is(err, apperror.ErrTranscriptUnavailable) {
		t.Fatalf("err = %v; want transcript unavailable", err)
	}
}

func TestResolveStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	primary := &fakeSource{name: "primary", result: &Transcript{Text: "x"}}

	_, err := NewResolver(primary).Resolve(ctx, "vid")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled in chain", err)
	}
	if primary.calls != 0 {
		t.Fatalf("source should not be called after cancellation")
	}
}

func TestResolverSources(t *testing.T) {
	r := NewResolver(&fakeSource{name: "a"}, &fakeSource{name: "b"})
	if got := strings.Join(r.Sources(), ","); got != "a,b" {
		t.Fatalf("Sources() = %q", got)
	}
}

func TestJoinSegments(t *testing.T) {
	segs := []Segment{{Text: "Hola"}, {Text: ""}, {Text: "mundo"}}
	if got := JoinSegments(segs); got != "Hola mundo" {
		t.Fatalf("JoinSegments = %q; want %q", got, "Hola mundo")
	}
	if got := JoinSegments(nil); got != "" {
		t.Fatalf("JoinSegments(nil) = %q", got)
	}
}
