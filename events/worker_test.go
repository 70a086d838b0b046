package events

import (
	"context"
	"errors"
	"testing"

	"studybot/apperror"
	"studybot/types"
)

type fakeSummarizer struct {
	err   error
	links []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, link string) (*types.Summary, error) {
	f.links = append(f.links, link)
	if f.err != nil {
		return nil, f.err
	}
	return &types.Summary{VideoID: "ABC123", Response: "ok"}, nil
}

func TestLinkHandler(t *testing.T) {
	cases := []struct {
		name      string
		message   string
		err       error
		wantMark  bool
		wantErr   bool
		wantCalls int
	}{
		{"success", `{"link":"https://www.youtube.com/watch?v=ABC123"}`, nil, true, false, 1},
		{"undecodable", `not json`, nil, true, false, 0},
		{"missing link", `{"link":"  "}`, nil, true, false, 0},
		{"link without v= dropped", `{"link":"https://youtu.be/x"}`, nil, true, false, 0},
		{"invalid link dropped", `{"link":"watch?v=x"}`,
			apperror.New(apperror.KindInvalidLink, "extract video id", errors.New("empty id")), true, false, 1},
		{"no transcript dropped", `{"link":"watch?v=x"}`,
			apperror.New(apperror.KindTranscriptUnavailable, "resolve transcript", errors.New("disabled")), true, false, 1},
		{"generation failure retried", `{"link":"watch?v=x"}`,
			apperror.New(apperror.KindGenerationFailure, "generate response", errors.New("503")), false, true, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := &fakeSummarizer{err: c.err}
			mark, err := NewLinkHandler(svc, nil).HandleMessage(context.Background(), []byte(c.message))
			if mark != c.wantMark {
				t.Errorf("mark = %v; want %v", mark, c.wantMark)
			}
			if (err != nil) != c.wantErr {
				t.Errorf("err = %v; wantErr %v", err, c.wantErr)
			}
			if len(svc.links) != c.wantCalls {
				t.Errorf("Summarize called %d times; want %d", len(svc.links), c.wantCalls)
			}
		})
	}
}

type fakeGuard struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func (g *fakeGuard) Claim(ctx context.Context, videoID string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.claimed[videoID] {
		return false, nil
	}
	g.claimed[videoID] = true
	return true, nil
}

func (g *fakeGuard) Release(ctx context.Context, videoID string) error {
	g.released = append(g.released, videoID)
	delete(g.claimed, videoID)
	return nil
}

func TestLinkHandlerSkipsDuplicates(t *testing.T) {
	svc := &fakeSummarizer{}
	guard := &fakeGuard{claimed: map[string]bool{}}
	h := NewLinkHandler(svc, guard)
	msg := []byte(`{"link":"https://www.youtube.com/watch?v=ABC123&t=10"}`)

	for i := 0; i < 2; i++ {
		if _, err := h.HandleMessage(context.Background(), msg); err != nil {
			t.Fatalf("HandleMessage error: %v", err)
		}
	}
	if len(svc.links) != 1 {
		t.Fatalf("Summarize called %d times; want 1", len(svc.links))
	}
	if !guard.claimed["ABC123"] {
		t.Fatalf("claim for ABC123 missing: %v", guard.claimed)
	}
}

func TestLinkHandlerReleasesOnRetryableFailure(t *testing.T) {
	svc := &fakeSummarizer{err: apperror.New(apperror.KindGenerationFailure, "generate response", errors.New("503"))}
	guard := &fakeGuard{claimed: map[string]bool{}}

	mark, err := NewLinkHandler(svc, guard).HandleMessage(context.Background(), []byte(`{"link":"watch?v=XYZ"}`))
	if err == nil || mark {
		t.Fatalf("mark = %v err = %v; want unmarked error", mark, err)
	}
	if len(guard.released) != 1 || guard.released[0] != "XYZ" {
		t.Fatalf("released = %v; want [XYZ]", guard.released)
	}
}

func TestLinkHandlerGuardErrorDoesNotBlock(t *testing.T) {
	svc := &fakeSummarizer{}
	guard := &fakeGuard{claimErr: errors.New("redis down")}

	if _, err := NewLinkHandler(svc, guard).HandleMessage(context.Background(), []byte(`{"link":"watch?v=XYZ"}`)); err != nil {
		t.Fatalf("HandleMessage error: %v", err)
	}
	if len(svc.links) != 1 {
		t.Fatalf("Summarize called %d times; want 1", len(svc.links))
	}
}

type flakySummarizer struct {
	errs  []error
	calls int
}

func (f *flakySummarizer) Summarize(ctx context.Context, link string) (*types.Summary, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &types.Summary{VideoID: "XYZ", Response: "ok"}, nil
}

func TestLinkHandlerDroppedRequestDoesNotHoldClaim(t *testing.T) {
	svc := &flakySummarizer{errs: []error{
		apperror.New(apperror.KindTranscriptUnavailable, "resolve transcript", context.DeadlineExceeded),
	}}
	guard := &fakeGuard{claimed: map[string]bool{}}
	h := NewLinkHandler(svc, guard)
	msg := []byte(`{"link":"watch?v=XYZ"}`)

	mark, err := h.HandleMessage(context.Background(), msg)
	if err != nil || !mark {
		t.Fatalf("first request: mark = %v err = %v; want dropped", mark, err)
	}
	if guard.claimed["XYZ"] {
		t.Fatalf("claim kept for a video that was not summarized")
	}

	if _, err := h.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("second request error: %v", err)
	}
	if svc.calls != 2 {
		t.Fatalf("Summarize called %d times; want 2", svc.calls)
	}
	if !guard.claimed["XYZ"] {
		t.Fatalf("claim missing after a successful summary")
	}
}
