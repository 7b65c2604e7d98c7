package handlers

import (
	"net/http"

	"stackit/internal/services"
	"stackit/internal/voting"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type voteRequest struct {
	VoteType string `json:"voteType" form:"voteType" binding:"required"`
}

// Vote handles upvote/downvote toggles and switches on a question or answer.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := currentUser(c)

	kind, err := voting.ParseKind(c.Param("kind"))
	if err != nil {
		RenderError(c, err)
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBind(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid vote type")
		return
	}
	dir, err := voting.ParseDirection(req.VoteType)
	if err != nil {
		RenderError(c, err)
		return
	}

	res, err := h.votes.VoteOn(c.Request.Context(), kind, id, user.ID, dir)
	if err != nil {
		RenderError(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message":   "Vote recorded successfully",
		"voteCount": res.Score,
		"userVote":  res.Direction.Public(),
	})
}

// Status reports the current user's vote on a target.
func (h *VoteHandler) Status(c *gin.Context) {
	user := currentUser(c)

	kind, err := voting.ParseKind(c.Param("kind"))
	if err != nil {
		RenderError(c, err)
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.votes.Status(c.Request.Context(), kind, id, user.ID)
	if err != nil {
		RenderError(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"voteCount": res.Score,
		"upvotes":   res.Upvotes,
		"downvotes": res.Downvotes,
		"userVote":  res.Direction.Public(),
	})
}
