package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"studybot/types"
)

type putCall struct {
	bucket, key, contentType string
	body                     []byte
}

type fakeObjects struct {
	calls []putCall
	err   error
}

func (f *fakeObjects) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(body)
	f.calls = append(f.calls, putCall{bucket, key, contentType, b})
	return nil
}

func sampleSummary() *types.Summary {
	return &types.Summary{
		ID:               "2f1c",
		Link:             "https://www.youtube.com/watch?v=ABC123",
		VideoID:          "ABC123",
		TranscriptSource: "watchpage",
		TranscriptFormat: "segments",
		Transcript:       "Hola mundo",
		Model:            "gemini-2.0-flash",
		Response:         "#### Resumen",
		CreatedAt:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestArchiveKey(t *testing.T) {
	cases := []struct {
		prefix string
		want   string
	}{
		{"", "summaries/ABC123/2f1c.json"},
		{"studybot", "studybot/summaries/ABC123/2f1c.json"},
		{"/studybot/prod/", "studybot/prod/summaries/ABC123/2f1c.json"},
	}
	for _, c := range cases {
		if got := New(&fakeObjects{}, "b", c.prefix).Key(sampleSummary()); got != c.want {
			t.Errorf("Key with prefix %q = %q; want %q", c.prefix, got, c.want)
		}
	}
}

func TestArchiveSave(t *testing.T) {
	objects := &fakeObjects{}
	a := New(objects, "study-archive", "dev")

	key, err := a.Save(context.Background(), sampleSummary())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if key != "dev/summaries/ABC123/2f1c.json" {
		t.Fatalf("key = %q", key)
	}
	if len(objects.calls) != 1 {
		t.Fatalf("expected one Put, got %d", len(objects.calls))
	}
	call := objects.calls[0]
	if call.bucket != "study-archive" || call.contentType != "application/json" {
		t.Fatalf("unexpected put: %+v", call)
	}

	var got types.Summary
	if err := json.Unmarshal(call.body, &got); err != nil {
		t.Fatalf("archived body is not JSON: %v", err)
	}
	if got.Response != "#### Resumen" || got.Transcript != "Hola mundo" {
		t.Fatalf("archived summary = %+v", got)
	}
}

func TestArchiveSaveErrors(t *testing.T) {
	a := New(&fakeObjects{err: errors.New("s3 AccessDenied: denied")}, "b", "")
	if _, err := a.Save(context.Background(), sampleSummary()); err == nil || !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("err = %v; want AccessDenied", err)
	}

	if _, err := a.Save(context.Background(), &types.Summary{VideoID: "x"}); err == nil {
		t.Fatalf("expected error for summary without id")
	}
}
