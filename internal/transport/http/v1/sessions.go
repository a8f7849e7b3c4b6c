package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// GetSession returns the state a participant sees when opening their link:
// status, persisted history (or the disclaimer for a fresh session) and
// whether input is disabled.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	view, err := h.service.OpenSession(c.Request().Context(), sessionID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// turnRequest is the body of a participant turn.
type turnRequest struct {
	Message string `json:"message"`
}

// turnResponse is the outcome of a driven turn.
type turnResponse struct {
	History []domain.Message `json:"history"`
	Done    bool             `json:"done"`
}

// PostTurn drives one conversation turn.
// POST /v1/sessions/:session_id/turns
func (h *Handler) PostTurn(c echo.Context) error {
	sessionID := c.Param("session_id")

	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.ParticipantTurn(c.Request().Context(), sessionID, req.Message)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, turnResponse{History: result.History, Done: result.Done})
}
