package handlers

import (
	"errors"
	"net/http"

	"stackit/internal/middleware"
	"stackit/internal/models"
	"stackit/internal/services"
	"stackit/internal/utils"
	"stackit/internal/voting"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 50

// OK writes a success envelope merged with obj.
func OK(c *gin.Context, code int, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(code, obj)
}

// Fail writes an error envelope.
func Fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

// RenderError maps service errors onto HTTP statuses.
func RenderError(c *gin.Context, err error) {
	code, message := errorStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Fail(c, code, message)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, voting.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, voting.ErrSelfVote):
		return http.StatusBadRequest, "You cannot vote on your own content"
	case errors.Is(err, voting.ErrPermission):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, voting.ErrInvalidTarget):
		return http.StatusBadRequest, "Answer does not belong to this question"
	case errors.Is(err, voting.ErrInvalidDirection):
		return http.StatusBadRequest, "Invalid vote type"
	case errors.Is(err, voting.ErrInvalidKind):
		return http.StatusBadRequest, "Invalid target type"
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, voting.ErrTransient):
		return http.StatusServiceUnavailable, "Temporary failure, please retry"
	}
	return http.StatusInternalServerError, "Server error"
}

func currentUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		Fail(c, http.StatusNotFound, "Not found")
	}
	return id, ok
}

func pageQuery(c *gin.Context, defaultLimit int) services.Page {
	limit := utils.StringToInt(c.DefaultQuery("limit", ""))
	if limit == 0 {
		limit = defaultLimit
	}
	return services.NewPage(utils.StringToInt(c.Query("page")), limit, maxPageSize)
}

func pagination(p services.Page, total int64) gin.H {
	return gin.H{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"pages": p.Pages(total),
	}
}
