package handler

import (
	"errors"
	"net/http"

	"github.com/avtomaktab/avtotest-backend/internal/exam"
	"github.com/avtomaktab/avtotest-backend/internal/middleware"
	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/avtomaktab/avtotest-backend/internal/service"
	"github.com/avtomaktab/avtotest-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestHandler handles the exam attempt endpoints.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// Start godoc
// POST /api/v1/test/start
// Begins a fresh attempt, discarding any previous state.
func (h *TestHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.testService.Start(c.Request.Context(), claims.UserID)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// State godoc
// GET /api/v1/test/state
// Returns the current attempt, resuming a stored one if needed.
func (h *TestHandler) State(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.testService.State(c.Request.Context(), claims.UserID)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Answer godoc
// POST /api/v1/test/answer
// Selects a choice for a question.
func (h *TestHandler) Answer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	choiceID, err := uuid.Parse(req.ChoiceID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.testService.Select(c.Request.Context(), claims.UserID, questionID, choiceID)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Check godoc
// POST /api/v1/test/check
// Locks in the answer for a question and reports whether it was correct.
func (h *TestHandler) Check(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CheckRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	correct, view, err := h.testService.Check(c.Request.Context(), claims.UserID, questionID)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"correct": correct,
		"view":    view,
	})
}

// Navigate godoc
// POST /api/v1/test/navigate
// Moves the current question pointer (next, prev or jump with index).
func (h *TestHandler) Navigate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.testService.Navigate(c.Request.Context(), claims.UserID, req.Action, req.Index)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Finish godoc
// POST /api/v1/test/finish
// Submits the attempt for scoring.
func (h *TestHandler) Finish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.testService.Finish(c.Request.Context(), claims.UserID)
	if err != nil {
		failTest(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// failTest maps exam domain errors onto API error codes.
func failTest(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveTest):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveSession)
	case errors.Is(err, exam.ErrEmptyBank):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, exam.ErrNotStarted):
		response.Fail(c, http.StatusConflict, response.ErrTestNotStarted)
	case errors.Is(err, exam.ErrFinished):
		response.Fail(c, http.StatusConflict, response.ErrTestFinished)
	case errors.Is(err, exam.ErrUnknownQuestion):
		response.Fail(c, http.StatusNotFound, response.ErrUnknownQuestion)
	case errors.Is(err, exam.ErrAlreadyChecked):
		response.Fail(c, http.StatusConflict, response.ErrQuestionChecked)
	case errors.Is(err, exam.ErrNoAnswer):
		response.Fail(c, http.StatusBadRequest, response.ErrAnswerRequired)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
