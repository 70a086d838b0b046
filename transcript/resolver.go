package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"

	"studybot/apperror"
)

// Source is one way of obtaining a transcript. Sources are tried in order by a Resolver.
type Source interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (*Transcript, error)
}

// Resolver tries each source in order and returns the first success.
// There is no caching and no retry beyond moving on to the next source.
type Resolver struct {
	sources []Source
}

// NewResolver builds a resolver over sources, in priority order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Sources returns the source names in the order they are tried.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the transcript for videoID. When every source fails the error
// matches apperror.ErrTranscriptUnavailable and carries each source's failure.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*Transcript, error) {
	var errs []error
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		t, err := src.Fetch(ctx, videoID)
		if err == nil && t != nil {
			if t.VideoID == "" {
				t.VideoID = videoID
			}
			if t.Source == "" {
				t.Source = src.Name()
			}
			return t, nil
		}
		if err == nil {
			err = errors.New("source returned no transcript")
		}

		log.Printf("transcript source %q failed for %s: %v", src.Name(), videoID, err)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no transcript sources configured"))
	}
	return nil, apperror.New(apperror.KindTranscriptUnavailable, "resolve transcript", errors.Join(errs...))
}
