package transcript

import (
	"errors"
	"strings"

	"studybot/apperror"
)

// ExtractVideoID returns the text after the first "v=" and before the next "&".
// Only long-form watch links are understood; short (youtu.be/<id>) and embed links
// are not, and the link is not validated as a URL.
func ExtractVideoID(link string) (string, error) {
	_, rest, found := strings.Cut(link, "v=")
	if !found {
		return "", apperror.New(apperror.KindInvalidLink, "extract video id", errors.New(`link has no "v=" parameter`))
	}
	id, _, _ := strings.Cut(rest, "&")
	if id == "" {
		return "", apperror.New(apperror.KindInvalidLink, "extract video id", errors.New("empty video id"))
	}
	return id, nil
}
