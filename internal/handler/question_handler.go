package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/response"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/spreadsheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// UploadQuestions godoc
// POST /api/upload
// Replaces the whole question bank (and the answer log) with the rows of an
// uploaded .xlsx workbook.
func (h *QuestionHandler) UploadQuestions(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil || header.Filename == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if err := h.questionService.ValidateUpload(header); err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		}
		return
	}

	count, err := h.questionService.ReplaceFromSpreadsheet(c.Request.Context(), file)
	if err != nil {
		var pe *spreadsheet.ParseError
		if errors.As(err, &pe) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidSpreadsheet,
				map[string]string{"detail": pe.Error()})
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Questions uploaded successfully",
		"count":   count,
	})
}

// ListQuestions godoc
// GET /api/questions
// Lists the question bank in id order. The answer key is only included for
// administrators.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	sess := middleware.GetSession(c)
	withAnswers := sess != nil && sess.IsAdmin

	questions, err := h.questionService.ListForQuiz(c.Request.Context(), withAnswers)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.QuizQuestion{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CountQuestions godoc
// GET /api/questions/count
func (h *QuestionHandler) CountQuestions(c *gin.Context) {
	count, err := h.questionService.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// DownloadTemplate godoc
// GET /questions_template.xlsx
// Streams an upload template: the header row plus one example question.
func (h *QuestionHandler) DownloadTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteQuestions(&buf, []model.Question{spreadsheet.TemplateExample}); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="questions_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
