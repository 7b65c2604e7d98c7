package handlers

import (
	"net/http"
	"strings"

	"stackit/internal/services"
	"stackit/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type questionRequest struct {
	Title       string   `json:"title" binding:"required,max=150"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
}

type updateQuestionRequest struct {
	Title       string   `json:"title" binding:"max=150"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (h *QuestionHandler) List(c *gin.Context) {
	page := pageQuery(c, 10)
	sort := services.SortNewest
	if c.Query("sort") == string(services.SortVotes) {
		sort = services.SortVotes
	}

	var tags []string
	if raw := c.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	questions, total, err := h.questions.List(c.Request.Context(), page, sort, tags)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{
		"questions":  questions,
		"pagination": pagination(page, total),
	})
}

func (h *QuestionHandler) Hot(c *gin.Context) {
	questions, err := h.questions.Hot(c.Request.Context(), services.DefaultHotLimit)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"questions": questions})
}

func (h *QuestionHandler) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		RenderError(c, err)
		return
	}
	q.Rendered = utils.RenderMarkdown(q.Description)
	OK(c, http.StatusOK, gin.H{"question": q})
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title (max 150 characters) and description are required")
		return
	}

	q, err := h.questions.Create(c.Request.Context(), currentUser(c), req.Title, req.Description, req.Tags)
	if err != nil {
		RenderError(c, err)
		return
	}
	q.Rendered = utils.RenderMarkdown(q.Description)
	OK(c, http.StatusCreated, gin.H{"question": q})
}

func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title must be at most 150 characters")
		return
	}

	q, err := h.questions.Update(c.Request.Context(), id, currentUser(c), req.Title, req.Description, req.Tags)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"question": q})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
