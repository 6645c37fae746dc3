package status_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/simmerbot/internal/adapters/status"
	"github.com/alejandrodnm/simmerbot/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var started = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := status.New(":0", started)
	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatus_Initial(t *testing.T) {
	s := status.New(":0", started)
	rec := get(t, s.Handler(), "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19T09:00:00Z", body["started_at"])
	assert.Equal(t, float64(0), body["iterations"])
	assert.Nil(t, body["last_report"])
	assert.Nil(t, body["last_error"])
}

func TestStatus_TracksFailuresAndRecovery(t *testing.T) {
	s := status.New(":0", started)
	ctx := context.Background()
	at := started.Add(5 * time.Minute)

	require.NoError(t, s.NotifyError(ctx, at, errors.New("simmer 502 Bad Gateway: ")))
	require.NoError(t, s.NotifyError(ctx, at.Add(5*time.Minute), errors.New("timeout")))

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Iterations)
	assert.Equal(t, 2, snap.ConsecutiveFailures)
	require.NotNil(t, snap.LastError)
	assert.Equal(t, "timeout", *snap.LastError)

	report := domain.Report{RunID: "r3", CheckedAt: at.Add(10 * time.Minute), Decision: domain.DecisionScanned}
	require.NoError(t, s.Notify(ctx, report))

	snap = s.Snapshot()
	assert.Equal(t, 3, snap.Iterations)
	assert.Zero(t, snap.ConsecutiveFailures)
	require.NotNil(t, snap.LastReport)
	assert.Equal(t, "r3", snap.LastReport.RunID)
	assert.Equal(t, "timeout", *snap.LastError, "last error is kept for inspection")

	rec := get(t, s.Handler(), "/status")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	last := body["last_report"].(map[string]any)
	assert.Equal(t, "SCANNED", last["decision"])
}

func TestStart_StopsOnCancel(t *testing.T) {
	s := status.New("127.0.0.1:0", started)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
