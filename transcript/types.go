package transcript

import (
	"strings"
	"time"
)

// Format describes the shape of Transcript.Text.
type Format string

const (
	// FormatSegments is plain text joined from timed segments with single spaces.
	FormatSegments Format = "segments"
	// FormatRaw is a caption payload as returned by the captions API (e.g. SRT/SBV), not segment-joined.
	FormatRaw Format = "raw"
)

// Segment is one timed line of a transcript.
type Segment struct {
	Text     string        `json:"text"`
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
}

// Transcript is the resolved text of a video plus where it came from.
type Transcript struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
	Source  string `json:"source"`
	Format  Format `json:"format"`
}

// CaptionTrack is a language-specific caption stream listed by the captions API.
type CaptionTrack struct {
	ID       string `json:"id"`
	Language string `json:"language"`
}

// JoinSegments joins segment texts with single spaces, preserving order.
// Empty segments are skipped so they do not produce double spaces.
func JoinSegments(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
