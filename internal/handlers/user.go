package handlers

import (
	"net/http"

	"stackit/internal/services"

	"github.com/gin-gonic/gin"
)

const leaderboardSize = 10

type UserHandler struct {
	users      *services.UserService
	reputation *services.ReputationService
}

func NewUserHandler(users *services.UserService, reputation *services.ReputationService) *UserHandler {
	return &UserHandler{users: users, reputation: reputation}
}

// Profile 用户主页
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.users.Profile(c.Request.Context(), id)
	if err != nil {
		RenderError(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":         p.User.ID,
			"username":   p.User.Username,
			"avatar":     p.User.Avatar,
			"bio":        p.User.Bio,
			"reputation": p.User.Reputation,
			"level":      p.LevelName,
			"levelIcon":  p.LevelIcon,
			"createdAt":  p.User.CreatedAt,
		},
		"stats": gin.H{
			"questions": p.QuestionCount,
			"answers":   p.AnswerCount,
			"accepted":  p.AcceptedCount,
		},
	})
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=30"`
	Avatar   string `json:"avatar" binding:"max=255"`
	Bio      string `json:"bio" binding:"max=200"`
}

// UpdateProfile 修改用户资料，仅限本人或管理员
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Username must be 3-30 characters, bio at most 200")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, currentUser(c), req.Username, req.Avatar, req.Bio)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// Reputation lists a user's reputation history.
func (h *UserHandler) Reputation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page := pageQuery(c, 20)

	logs, total, err := h.reputation.History(c.Request.Context(), id, page)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{
		"history":    logs,
		"pagination": pagination(page, total),
	})
}

func (h *UserHandler) Leaderboard(c *gin.Context) {
	users, err := h.reputation.Leaderboard(c.Request.Context(), leaderboardSize)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"users": users})
}
