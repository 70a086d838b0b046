package types

import "time"

// Summary is one completed link-to-summary run. It is what gets archived.
type Summary struct {
	ID               string    `json:"id"`
	Link             string    `json:"link"`
	VideoID          string    `json:"video_id"`
	TranscriptSource string    `json:"transcript_source"`
	TranscriptFormat string    `json:"transcript_format"`
	Transcript       string    `json:"transcript"`
	Model            string    `json:"model"`
	Response         string    `json:"response"`
	CreatedAt        time.Time `json:"created_at"`
}

// SummaryEvent announces a completed summary on the summary topic.
// It omits the transcript and response bodies; ArchiveKey points at them when set.
type SummaryEvent struct {
	ID               string    `json:"id"`
	Link             string    `json:"link"`
	VideoID          string    `json:"video_id"`
	TranscriptSource string    `json:"transcript_source"`
	Model            string    `json:"model"`
	ResponseChars    int       `json:"response_chars"`
	ArchiveKey       string    `json:"archive_key,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewSummaryEvent builds the event for s.
func NewSummaryEvent(s *Summary, archiveKey string) SummaryEvent {
	return SummaryEvent{
		ID:               s.ID,
		Link:             s.Link,
		VideoID:          s.VideoID,
		TranscriptSource: s.TranscriptSource,
		Model:            s.Model,
		ResponseChars:    len([]rune(s.Response)),
		ArchiveKey:       archiveKey,
		CreatedAt:        s.CreatedAt,
	}
}
