package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/response"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/validator"
)

// QuizHandler handles quiz submission.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitQuiz godoc
// POST /api/quiz/submit
// Grades {answers: {question_id: option}} against the bank and records every
// answer. The score total is the size of the whole bank.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.quizService.Submit(c.Request.Context(), sess.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAnswer):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"answers": err.Error()})
		case errors.Is(err, service.ErrQuestionNotFound):
			response.FailWithMessage(c, http.StatusNotFound, response.ErrQuestionNotFound, err.Error())
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, summary)
}
