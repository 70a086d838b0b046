package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"studybot/apperror"
	"studybot/types"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindInvalidRequest:        http.StatusBadRequest,
	apperror.KindInvalidLink:           http.StatusBadRequest,
	apperror.KindTranscriptUnavailable: http.StatusBadRequest,
	apperror.KindGenerationFailure:     http.StatusInternalServerError,
	apperror.KindPersistenceConflict:   http.StatusConflict,
	apperror.KindUnauthorized:          http.StatusUnauthorized,
	apperror.KindNotFound:              http.StatusNotFound,
	apperror.KindInternal:              http.StatusInternalServerError,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// responder writes error bodies. The full error is always logged; clients get the
// sanitized message for its kind unless exposeDetail is set.
type responder struct {
	exposeDetail bool
}

func (r responder) fail(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	log.Printf("❌ API Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	detail := apperror.Message(kind)
	if r.exposeDetail {
		detail += ": " + err.Error()
	}
	c.JSON(StatusFor(kind), types.ErrorResponse{Detail: detail, Code: string(kind)})
}

// badRequest reports a body that failed to bind or validate.
func (r responder) badRequest(c *gin.Context, err error) {
	r.fail(c, apperror.New(apperror.KindInvalidRequest, "bind request", err))
}

// noSessions rejects every token; used when no session store is configured.
type noSessions struct{}

func (noSessions) UserID(ctx context.Context, token string) (int64, error) {
	return 0, apperror.New(apperror.KindUnauthorized, "lookup session", errors.New("no session store configured"))
}
