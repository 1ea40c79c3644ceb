package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/answerhub/forum-api/internal/api/metrics"
	"github.com/answerhub/forum-api/internal/api/middleware"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// AnswerHandler handles HTTP requests for answer operations.
type AnswerHandler struct {
	answers ports.AnswerService
}

func NewAnswerHandler(answers ports.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// Create handles POST /question/:questionId/answer/create.
func (h *AnswerHandler) Create(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answer, err := h.answers.Create(c.Request().Context(), middleware.Token(c), c.Param("questionId"), req.Answer)
	if err != nil {
		return err
	}
	metrics.AnswersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, answerStatusResponse{
		ID:     answer.ID,
		Status: "ANSWER CREATED",
	})
}

// GetAllByQuestion handles GET /answer/all/:questionId.
func (h *AnswerHandler) GetAllByQuestion(c echo.Context) error {
	answers, err := h.answers.GetAllByQuestion(c.Request().Context(), middleware.Token(c), c.Param("questionId"))
	if err != nil {
		return err
	}

	out := make([]answerDetailsResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, answerDetailsResponse{ID: a.ID, QuestionID: a.QuestionID, Content: a.Content})
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles PUT /answer/edit/:answerId.
func (h *AnswerHandler) Edit(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answer, err := h.answers.Edit(c.Request().Context(), middleware.Token(c), c.Param("answerId"), req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, answerStatusResponse{
		ID:     answer.ID,
		Status: "ANSWER EDITED",
	})
}

// Delete handles DELETE /answer/delete/:answerId.
func (h *AnswerHandler) Delete(c echo.Context) error {
	id, err := h.answers.Delete(c.Request().Context(), middleware.Token(c), c.Param("answerId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, answerStatusResponse{
		ID:     id,
		Status: "ANSWER DELETED",
	})
}
