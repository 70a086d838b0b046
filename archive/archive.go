// Package archive writes completed summaries to object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"studybot/types"
)

// ObjectStore is the narrow object-storage interface the archive needs.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

// Archive stores each summary as JSON under <prefix>summaries/<videoID>/<id>.json.
type Archive struct {
	objects ObjectStore
	bucket  string
	prefix  string
}

// New creates an Archive. prefix may be empty; a trailing slash is added otherwise.
func New(objects ObjectStore, bucket, prefix string) *Archive {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Archive{objects: objects, bucket: bucket, prefix: prefix}
}

// Key returns the object key for s.
func (a *Archive) Key(s *types.Summary) string {
	return a.prefix + path.Join("summaries", s.VideoID, s.ID+".json")
}

// Save uploads s and returns its key.
func (a *Archive) Save(ctx context.Context, s *types.Summary) (string, error) {
	if s == nil || s.ID == "" || s.VideoID == "" {
		return "", errors.New("archive: summary needs an id and a video id")
	}
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("archive: encode summary: %w", err)
	}

	key := a.Key(s)
	if err := a.objects.Put(ctx, a.bucket, key, bytes.NewReader(body), "application/json"); err != nil {
		return "", fmt.Errorf("archive: put s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}
