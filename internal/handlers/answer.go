package handlers

import (
	"net/http"

	"stackit/internal/models"
	"stackit/internal/services"
	"stackit/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answers *services.AnswerService
}

func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type createAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Content    string `json:"content" binding:"required,min=10"`
}

type updateAnswerRequest struct {
	Content string `json:"content" binding:"required,min=10"`
}

func (h *AnswerHandler) List(c *gin.Context) {
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}
	page := pageQuery(c, 10)

	answers, total, err := h.answers.ListByQuestion(c.Request.Context(), questionID, page)
	if err != nil {
		RenderError(c, err)
		return
	}
	renderAnswers(answers)

	OK(c, http.StatusOK, gin.H{
		"answers":    answers,
		"pagination": pagination(page, total),
	})
}

func (h *AnswerHandler) Create(c *gin.Context) {
	var req createAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Answer content must be at least 10 characters")
		return
	}

	answer, err := h.answers.Create(c.Request.Context(), req.QuestionID, currentUser(c), req.Content)
	if err != nil {
		RenderError(c, err)
		return
	}
	answer.Rendered = utils.RenderMarkdown(answer.Content)
	OK(c, http.StatusCreated, gin.H{"answer": answer})
}

func (h *AnswerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Answer content must be at least 10 characters")
		return
	}

	answer, err := h.answers.Update(c.Request.Context(), id, currentUser(c), req.Content)
	if err != nil {
		RenderError(c, err)
		return
	}
	answer.Content = req.Content
	answer.Rendered = utils.RenderMarkdown(answer.Content)
	OK(c, http.StatusOK, gin.H{"answer": answer})
}

// Accept marks an answer accepted; the question is the one it belongs to.
func (h *AnswerHandler) Accept(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.answers.Accept(c.Request.Context(), id, currentUser(c).ID)
	if err != nil {
		RenderError(c, err)
		return
	}
	renderAccept(c, res)
}

// AcceptForQuestion accepts answerId as the answer of question :id.
func (h *AnswerHandler) AcceptForQuestion(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	answerID, ok := paramID(c, "answerId")
	if !ok {
		return
	}

	res, err := h.answers.AcceptAnswer(c.Request.Context(), questionID, answerID, currentUser(c).ID)
	if err != nil {
		RenderError(c, err)
		return
	}
	renderAccept(c, res)
}

func renderAccept(c *gin.Context, res services.AcceptResult) {
	message := "Answer accepted successfully"
	if !res.Changed {
		message = "Answer already accepted"
	}
	OK(c, http.StatusOK, gin.H{
		"message":          message,
		"accepted":         true,
		"questionId":       res.QuestionID,
		"acceptedAnswerId": res.AnswerID,
	})
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.answers.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}

func renderAnswers(answers []models.Answer) {
	for i := range answers {
		answers[i].Rendered = utils.RenderMarkdown(answers[i].Content)
	}
}
