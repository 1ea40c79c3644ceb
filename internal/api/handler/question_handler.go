package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/answerhub/forum-api/internal/api/metrics"
	"github.com/answerhub/forum-api/internal/api/middleware"
	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// QuestionHandler handles HTTP requests for question operations.
type QuestionHandler struct {
	questions ports.QuestionService
}

func NewQuestionHandler(questions ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// Create handles POST /question/create.
func (h *QuestionHandler) Create(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questions.Create(c.Request().Context(), middleware.Token(c), req.Content)
	if err != nil {
		return err
	}
	metrics.QuestionsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, questionStatusResponse{
		ID:     question.ID,
		Status: "QUESTION CREATED",
	})
}

// GetAll handles GET /question/all.
func (h *QuestionHandler) GetAll(c echo.Context) error {
	questions, err := h.questions.GetAll(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuestionDetails(questions))
}

// GetAllByUser handles GET /question/all/:userId.
func (h *QuestionHandler) GetAllByUser(c echo.Context) error {
	questions, err := h.questions.GetAllByUser(c.Request().Context(), middleware.Token(c), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuestionDetails(questions))
}

// Edit handles PUT /question/edit/:questionId.
func (h *QuestionHandler) Edit(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questions.Edit(c.Request().Context(), middleware.Token(c), c.Param("questionId"), req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionStatusResponse{
		ID:     question.ID,
		Status: "QUESTION EDITED",
	})
}

// Delete handles DELETE /question/delete/:questionId.
func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := h.questions.Delete(c.Request().Context(), middleware.Token(c), c.Param("questionId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionStatusResponse{
		ID:     id,
		Status: "QUESTION DELETED",
	})
}

func toQuestionDetails(questions []*domain.Question) []questionDetailsResponse {
	out := make([]questionDetailsResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionDetailsResponse{ID: q.ID, Content: q.Content})
	}
	return out
}
