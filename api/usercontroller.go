package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studybot/auth"
	"studybot/types"
)

// RegisterUserRoutes registers the user and email endpoints.
func RegisterUserRoutes(r *gin.Engine, st UserStore, sessions auth.TokenStore, resp responder) {
	h := &userController{store: st, resp: resp}
	g := r.Group("/user")
	g.GET("/me/", auth.RequireUser(sessions, st), h.handleMe)
	g.POST("/users/", h.handleCreateUser)
	g.POST("/emails/", h.handleCreateEmail)
}

type userController struct {
	store UserStore
	resp  responder
}

func (h *userController) handleMe(c *gin.Context) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *userController) handleCreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.badRequest(c, err)
		return
	}

	u, err := h.store.CreateUser(c.Request.Context(), req.Email, *req.Description)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CreateUserResponse{Message: "User created successfully", User: u})
}

func (h *userController) handleCreateEmail(c *gin.Context) {
	var req types.CreateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.badRequest(c, err)
		return
	}

	e, err := h.store.CreateEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CreateEmailResponse{Message: "Email saved successfully", Email: e})
}
