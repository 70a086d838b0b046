package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"studybot/auth"
	"studybot/types"
)

// Summarizer turns a video link into a completed summary.
type Summarizer interface {
	Summarize(ctx context.Context, link string) (*types.Summary, error)
}

// UserStore is the persistence the user routes need.
type UserStore interface {
	auth.UserLookup
	CreateUser(ctx context.Context, email, description string) (*types.User, error)
	CreateEmail(ctx context.Context, email string) (*types.EmailRecord, error)
	Ping(ctx context.Context) error
}

// Deps are the collaborators behind the HTTP routes.
type Deps struct {
	Summarizer Summarizer
	Store      UserStore
	// Sessions resolves bearer tokens for /user/me/. When nil every token is rejected.
	Sessions auth.TokenStore

	RequestLogging    bool
	ExposeErrorDetail bool
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.RequestLogging {
		r.Use(gin.Logger())
	}

	resp := responder{exposeDetail: d.ExposeErrorDetail}
	sessions := d.Sessions
	if sessions == nil {
		sessions = noSessions{}
	}

	RegisterLinkRoutes(r, d.Summarizer, resp)
	RegisterUserRoutes(r, d.Store, sessions, resp)
	RegisterHealthRoutes(r, d.Store)
	return r
}
