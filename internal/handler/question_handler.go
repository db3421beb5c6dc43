package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusq/campusq-backend/internal/middleware"
	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/response"
	"github.com/campusq/campusq-backend/internal/service"
	"github.com/campusq/campusq-backend/internal/validator"
)

// QuestionHandler handles question lifecycle endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Ask godoc
// POST /api/v1/question/ask
// Creates a pending question, with an optional attachment from the
// multipart field "questionFile".
func (h *QuestionHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	facultyID, err := uuid.Parse(req.FacultyID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, err := formAttachment(c, "questionFile")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	question, err := h.questionService.Ask(c.Request.Context(), service.AskInput{
		StudentID:     studentID,
		FacultyID:     facultyID,
		Subject:       req.Subject,
		QuestionTitle: req.QuestionTitle,
		QuestionText:  req.QuestionText,
		File:          file,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStudent):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidStudent)
		case errors.Is(err, service.ErrInvalidFaculty):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidFaculty)
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"question": question,
	})
}

// Answer godoc
// POST /api/v1/question/answer/:questionId
// Stores the answer and marks the question Answered. Only the assigned
// faculty member may answer.
func (h *QuestionHandler) Answer(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	actor := middleware.GetActor(c)
	if actor == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Answer(c.Request.Context(), questionID, actor.ID, req.AnswerText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
		case errors.Is(err, service.ErrNotAssigned):
			response.Fail(c, http.StatusForbidden, response.ErrNotAssigned)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"question": question,
	})
}

// All godoc
// GET /api/v1/question/all
// Lists every question with both parties projected.
func (h *QuestionHandler) All(c *gin.Context) {
	questions, err := h.questionService.All(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
	})
}

// ByID godoc
// GET /api/v1/question/:id
// Returns one question with both parties projected.
func (h *QuestionHandler) ByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"question": question,
	})
}

// ByStudent godoc
// GET /api/v1/question/student/:userId
// Lists the questions a student has asked.
func (h *QuestionHandler) ByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
	})
}

// ByFaculty godoc
// GET /api/v1/question/faculty/:facultyId
// Lists the questions assigned to a faculty member.
func (h *QuestionHandler) ByFaculty(c *gin.Context) {
	facultyID, err := uuid.Parse(c.Param("facultyId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ByFaculty(c.Request.Context(), facultyID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
	})
}
