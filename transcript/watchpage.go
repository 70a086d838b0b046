package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
)

// SourceWatchPage is the name of the unofficial watch-page transcript source.
const SourceWatchPage = "watchpage"

// videoClient is the part of *youtube.Client the watch-page source uses.
type videoClient interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// WatchPageConfig configures the watch-page source.
type WatchPageConfig struct {
	HTTPClient *http.Client
	// Languages in priority order, e.g. ["es", "en"].
	Languages []string
}

// WatchPageSource reads a video's caption track list through the player endpoints
// and fetches the transcript for the first preferred language that has one.
// It uses no API key and is not an official interface, so it may break without notice.
type WatchPageSource struct {
	client    videoClient
	languages []string
}

// NewWatchPageSource creates the unofficial transcript source.
func NewWatchPageSource(cfg WatchPageConfig) *WatchPageSource {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return newWatchPageSource(&youtube.Client{HTTPClient: httpClient}, cfg.Languages)
}

func newWatchPageSource(client videoClient, languages []string) *WatchPageSource {
	return &WatchPageSource{client: client, languages: languages}
}

func (s *WatchPageSource) Name() string { return SourceWatchPage }

// Fetch implements Source.
func (s *WatchPageSource) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	segs, err := s.FetchSegments(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &Transcript{
		VideoID: videoID,
		Text:    JoinSegments(segs),
		Source:  SourceWatchPage,
		Format:  FormatSegments,
	}, nil
}

// FetchSegments returns the ordered transcript segments of videoID.
func (s *WatchPageSource) FetchSegments(ctx context.Context, videoID string) ([]Segment, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	if len(video.CaptionTracks) == 0 {
		return nil, errors.New("transcripts are disabled for this video")
	}

	track, ok := pickTrack(video.CaptionTracks, s.languages)
	if !ok {
		return nil, fmt.Errorf("no transcript in languages %v (available: %s)", s.languages, trackLanguages(video.CaptionTracks))
	}

	lines, err := s.client.GetTranscriptCtx(ctx, video, track.LanguageCode)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript %s: %w", track.LanguageCode, err)
	}
	segs := toSegments(lines)
	if len(segs) == 0 {
		return nil, errors.New("transcript has no segments")
	}
	return segs, nil
}

// pickTrack walks languages in priority order; within a language a manually created
// track beats an auto-generated one.
func pickTrack(tracks []youtube.CaptionTrack, languages []string) (youtube.CaptionTrack, bool) {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return youtube.CaptionTrack{}, false
}

func trackLanguages(tracks []youtube.CaptionTrack) string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.LanguageCode)
	}
	return strings.Join(langs, ",")
}

// toSegments drops blank lines and converts millisecond offsets.
func toSegments(lines youtube.VideoTranscript) []Segment {
	segs := make([]Segment, 0, len(lines))
	for _, l := range lines {
		text := strings.Join(strings.Fields(l.Text), " ")
		if text == "" {
			continue
		}
		segs = append(segs, Segment{
			Text:     text,
			Start:    time.Duration(l.StartMs) * time.Millisecond,
			Duration: time.Duration(l.Duration) * time.Millisecond,
		})
	}
	return segs
}
