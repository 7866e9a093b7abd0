package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/boardroom/internal/adapters/history/file"
	"github.com/bnema/boardroom/internal/adapters/judgment/offline"
	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, withHistory bool) (*Server, *application.Service) {
	t.Helper()

	panel := domain.DefaultPanel()
	deps := application.ServiceDeps{
		Provider: offline.NewProvider(panel[0].Name),
		Logger:   zerolog.Nop(),
	}
	if withHistory {
		sink := file.NewSink(t.TempDir())
		deps.Sink = sink
		deps.Sessions = sink
	}

	service := application.NewService(deps, application.DefaultConfig())
	return New(service, Options{Addr: "127.0.0.1:0", Logger: zerolog.Nop(), Version: "test"}), service
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := do(t, srv, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestPanelRoute(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := do(t, srv, http.MethodGet, "/panel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Participants []participantView `json:"participants"`
		MaxIter      int               `json:"max_iterations"`
	}](t, rec)
	require.Len(t, body.Participants, 6)
	assert.Equal(t, domain.ParticipantName("First Principles Physicist"), body.Participants[0].Name)
	assert.Equal(t, application.DefaultMaxIterations, body.MaxIter)
}

func TestDebateLifecycle(t *testing.T) {
	srv, service := newTestServer(t, true)

	rec := do(t, srv, http.MethodPost, "/debates", `{"topic":"Open a Berlin office","max_iterations":2}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	accepted := decode[struct {
		SessionID domain.SessionID `json:"session_id"`
	}](t, rec)
	require.NotEmpty(t, accepted.SessionID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	report, err := service.Wait(ctx, accepted.SessionID)
	require.NoError(t, err)
	assert.True(t, report.ConsensusReached)

	rec = do(t, srv, http.MethodGet, "/debates/"+string(accepted.SessionID)+"/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[application.RunStatus](t, rec)
	assert.Equal(t, domain.SessionCompleted, status.Status)
	assert.Equal(t, 2, status.MaxIterations)
	assert.True(t, status.ConsensusReached)

	rec = do(t, srv, http.MethodGet, "/debates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Sessions []domain.SessionSummary `json:"sessions"`
	}](t, rec)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, accepted.SessionID, list.Sessions[0].ID)

	rec = do(t, srv, http.MethodGet, "/debates/"+string(accepted.SessionID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[sessionView](t, rec)
	require.NotNil(t, view.Report)
	assert.Equal(t, report.Synthesis, view.Report.Synthesis)

	rec = do(t, srv, http.MethodGet, "/debates/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.Stats](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "boardroom_http_requests_total")
}

func TestStartDebateRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t, false)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing topic", body: `{}`},
		{name: "malformed json", body: `{"topic":`},
		{name: "blank topic", body: `{"topic":"   "}`},
		{name: "unknown adjustment source", body: `{"topic":"x","adjustment_source":"gut"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/debates", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestUnknownDebate(t *testing.T) {
	srv, _ := newTestServer(t, true)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/debates/nope/status", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/debates/nope/stop", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/debates/nope", "").Code)
}

func TestHistoryUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := do(t, srv, http.MethodGet, "/debates", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/debates/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNormalizeOrigins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"https://app.example.com"}, normalizeOrigins([]string{" https://app.example.com/ ", ""}))
	assert.Len(t, normalizeOrigins(nil), 2)
}
