// Package adminapi provides the authenticated admin surface: the
// configuration chat, the session listing and analytics.
package adminapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feedbackloop/interviewd/internal/domain"
	"github.com/feedbackloop/interviewd/internal/policy"
	"github.com/feedbackloop/interviewd/internal/service"
)

// Handler handles admin HTTP requests.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
	token   string
}

// NewHandler creates a new admin handler. token is the shared bearer token;
// when empty, every caller is treated as admin (local development).
func NewHandler(service *service.Service, engine *policy.Engine, token string) *Handler {
	return &Handler{service: service, policy: engine, token: token}
}

// RegisterRoutes registers admin routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin", h.authorize)
	g.POST("/setup/turns", h.PostSetupTurn)
	g.POST("/scenarios", h.AcceptScenario)
	g.GET("/sessions", h.ListSessions)
	g.POST("/analytics", h.Analytics)
}

// authorize resolves the caller's role from the bearer token and asks the
// policy engine whether the request may proceed.
func (h *Handler) authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := "anonymous"
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		presented := strings.TrimPrefix(auth, "Bearer ")
		if h.token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) == 1 {
			role = "admin"
		}

		decision, err := h.policy.Evaluate(c.Request().Context(), map[string]any{
			"role": role,
			"path": c.Path(),
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		if decision != "allow" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		return next(c)
	}
}

// setupTurnRequest carries the whole configuration chat so far, trailing
// operator message last.
type setupTurnRequest struct {
	History []domain.Message `json:"history"`
}

// PostSetupTurn drives one turn of the configuration chat.
// POST /admin/setup/turns
func (h *Handler) PostSetupTurn(c echo.Context) error {
	var req setupTurnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	history, err := h.service.SetupTurn(c.Request().Context(), req.History)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"history": history})
}

// acceptRequest carries the manager agent message the operator approved.
type acceptRequest struct {
	Draft string `json:"draft"`
}

// AcceptScenario extracts and persists the approved scenario and returns
// the session id plus the shareable participant link. A parse failure is a
// 400 that leaves the flow open; the draft is never discarded server-side.
// POST /admin/scenarios
func (h *Handler) AcceptScenario(c echo.Context) error {
	var req acceptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	id, link, err := h.service.AcceptScenario(c.Request().Context(), req.Draft)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"session_id": id, "link": link})
}

// ListSessions returns every session summary, newest first.
// GET /admin/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.service.ListSessions(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"sessions": sessions})
}

// analyticsRequest is an ad-hoc question over all transcripts.
type analyticsRequest struct {
	Question string `json:"question"`
}

// Analytics answers a question over the persisted transcript corpus.
// POST /admin/analytics
func (h *Handler) Analytics(c echo.Context) error {
	var req analyticsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	answer, err := h.service.Analytics(c.Request().Context(), req.Question)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMalformedAgentOutput), errors.Is(err, domain.ErrEmptyTurn):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrScenarioNotFound):
		status = http.StatusNotFound
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
