package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studybot/apperror"
	"studybot/types"
)

const currentUserKey = "currentUser"

// UserLookup loads a user by id; *store.Postgres and *store.SQLite satisfy it.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*types.User, error)
}

// RequireUser authenticates "Authorization: Bearer <token>" and stores the user on
// the context. A missing, unknown or stale token yields 401.
func RequireUser(tokens TokenStore, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, err := tokens.UserID(c.Request.Context(), token)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthorized {
				abortUnauthorized(c)
				return
			}
			abortInternal(c, err)
			return
		}

		user, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				abortUnauthorized(c)
				return
			}
			abortInternal(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by RequireUser.
func CurrentUser(c *gin.Context) (*types.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*types.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
		Detail: apperror.Message(apperror.KindUnauthorized),
		Code:   string(apperror.KindUnauthorized),
	})
}

func abortInternal(c *gin.Context, err error) {
	log.Printf("❌ auth: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
		Detail: apperror.Message(apperror.KindInternal),
		Code:   string(apperror.KindInternal),
	})
}
