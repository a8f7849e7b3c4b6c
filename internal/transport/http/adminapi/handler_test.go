package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackloop/interviewd/internal/adapter/llm"
	"github.com/feedbackloop/interviewd/internal/blob"
	"github.com/feedbackloop/interviewd/internal/config"
	"github.com/feedbackloop/interviewd/internal/domain"
	"github.com/feedbackloop/interviewd/internal/policy"
	"github.com/feedbackloop/interviewd/internal/repository"
	"github.com/feedbackloop/interviewd/internal/service"
)

const testToken = "secret-token"

func newTestServer(t *testing.T, responses ...string) (*echo.Echo, *service.Service) {
	t.Helper()
	store, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := service.New(
		repository.NewScenarios(store),
		repository.NewTranscripts(store),
		llm.NewMockClient(responses...),
		&config.Config{BaseURL: "http://localhost:8080"},
	)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	e := echo.New()
	NewHandler(svc, engine, testToken).RegisterRoutes(e)
	return e, svc
}

func do(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminUnauthorized(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/admin/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/admin/sessions", "wrong-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListSessions(t *testing.T) {
	e, svc := newTestServer(t)

	_, _, err := svc.AcceptScenario(context.Background(), "```json\n"+
		`{"candidate_name":"Anna Nowak","key_questions":["Q1"]}`+"\n```")
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/admin/sessions", testToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sessions []service.SessionSummary `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "Anna Nowak", resp.Sessions[0].CandidateName)
	assert.Contains(t, resp.Sessions[0].Link, "/candidate?id=")
}

func TestAdminSetupTurn(t *testing.T) {
	e, _ := newTestServer(t, "What tone should the conversation take?")

	rec := do(e, http.MethodPost, "/admin/setup/turns", testToken, map[string]any{
		"history": []domain.Message{{Role: domain.RoleUser, Content: "New process for Anna"}},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		History []domain.Message `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.History, 2)
	assert.Equal(t, domain.RoleAssistant, resp.History[1].Role)
}

func TestAdminAcceptScenario(t *testing.T) {
	e, _ := newTestServer(t)

	draft := "```json\n" + `{"candidate_name":"Jan","key_questions":["Q1"]}` + "\n```"
	rec := do(e, http.MethodPost, "/admin/scenarios", testToken, map[string]string{"draft": draft})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["session_id"], 8)
	assert.Contains(t, resp["link"], resp["session_id"])
}

func TestAdminAcceptScenarioMalformed(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/admin/scenarios", testToken, map[string]string{"draft": "nothing here"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAnalytics(t *testing.T) {
	e, _ := newTestServer(t, "Mostly positive sentiment.")

	rec := do(e, http.MethodPost, "/admin/analytics", testToken, map[string]string{
		"question": "How do candidates feel?",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Mostly positive sentiment.", resp["answer"])
}
