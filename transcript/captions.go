package transcript

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// SourceCaptionsAPI is the name of the official captions API source.
const SourceCaptionsAPI = "captions-api"

// CaptionsAPI is the narrow slice of the YouTube Data API the captions source needs.
type CaptionsAPI interface {
	ListCaptions(ctx context.Context, videoID string) ([]CaptionTrack, error)
	DownloadCaption(ctx context.Context, captionID string) ([]byte, error)
}

// CaptionsSource lists a video's caption tracks through the official API, picks the
// first track (in API order) whose language is accepted, and downloads it.
//
// The downloaded payload is returned as-is (FormatRaw): unlike the watch-page source
// it is not segment-joined.
type CaptionsSource struct {
	api       CaptionsAPI
	languages []string
}

// NewCaptionsSource creates the official captions source.
func NewCaptionsSource(api CaptionsAPI, languages []string) *CaptionsSource {
	return &CaptionsSource{api: api, languages: languages}
}

func (s *CaptionsSource) Name() string { return SourceCaptionsAPI }

// Fetch implements Source.
func (s *CaptionsSource) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	tracks, err := s.api.ListCaptions(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list captions: %w", err)
	}
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks found by the official API")
	}

	track, ok := SelectCaptionTrack(tracks, s.languages)
	if !ok {
		return nil, fmt.Errorf("no caption track in languages %v", s.languages)
	}

	payload, err := s.api.DownloadCaption(ctx, track.ID)
	if err != nil {
		return nil, fmt.Errorf("download caption %s: %w", track.ID, err)
	}
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("caption %s is not valid UTF-8", track.ID)
	}

	return &Transcript{
		VideoID: videoID,
		Text:    string(payload),
		Source:  SourceCaptionsAPI,
		Format:  FormatRaw,
	}, nil
}

// SelectCaptionTrack returns the first track, in the order given, whose language is
// one of languages. The language list is a set here, not a priority order.
func SelectCaptionTrack(tracks []CaptionTrack, languages []string) (CaptionTrack, bool) {
	accepted := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		accepted[l] = struct{}{}
	}
	for _, t := range tracks {
		if _, ok := accepted[t.Language]; ok {
			return t, true
		}
	}
	return CaptionTrack{}, false
}
