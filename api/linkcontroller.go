package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studybot/types"
)

// RegisterLinkRoutes registers the summary endpoint.
func RegisterLinkRoutes(r *gin.Engine, svc Summarizer, resp responder) {
	h := &linkController{svc: svc, resp: resp}
	g := r.Group("/link")
	g.POST("/", h.handleSummarize)
}

type linkController struct {
	svc  Summarizer
	resp responder
}

// handleSummarize returns the model's study guide for a video link.
// POST /link/ {"link": "https://www.youtube.com/watch?v=..."} -> {"response": "..."}
func (h *linkController) handleSummarize(c *gin.Context) {
	var req types.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.badRequest(c, err)
		return
	}

	s, err := h.svc.Summarize(c.Request.Context(), req.Link)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LinkResponse{Response: s.Response})
}
