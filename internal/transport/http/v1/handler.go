// Package v1 provides the public participant API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedbackloop/interviewd/internal/domain"
	"github.com/feedbackloop/interviewd/internal/service"
)

// Handler handles participant HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new participant handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers participant routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.POST("/v1/sessions/:session_id/turns", h.PostTurn)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// httpStatus maps domain errors to HTTP statuses.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrScenarioNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingSessionID), errors.Is(err, domain.ErrEmptyTurn),
		errors.Is(err, domain.ErrMalformedAgentOutput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
}
