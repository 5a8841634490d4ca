package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/analysis"
	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/registry"
	"github.com/sells-group/scorecard/internal/render"
	"github.com/sells-group/scorecard/internal/store"
)

const segmentationAnswer = "We review segmentation weekly using Salesforce with a clear scoring rubric and 85% win rate on Tier 1 accounts."

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	reg, err := registry.LoadEmbedded()
	require.NoError(t, err)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	return New(analysis.NewService(reg, analysis.WithStore(st)), opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAnalyze_Valid(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	body := fmt.Sprintf(`{"subcomponent_id":"3-1","session_id":"s1","responses":{"q1":%q}}`, segmentationAnswer)
	w := do(t, h, http.MethodPost, "/v1/analysis", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res model.AnalysisResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "s1", res.SessionID)
	assert.GreaterOrEqual(t, res.OverallScore, 70.0)
	require.Len(t, res.Dimensions, 5)
	assert.Contains(t, res.ExecutiveSummary, "Overall Assessment")

	// The result was persisted and can be read back.
	w = do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.AnalysisResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.InDelta(t, res.OverallScore, got.OverallScore, 0.001)
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodPost, "/v1/analysis", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", errorBody(t, w))
}

func TestAnalyze_EmptyBody(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/analysis", http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_MissingSubcomponent(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodPost, "/v1/analysis", `{"responses":{"q1":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "subcomponent_id is required", errorBody(t, w))
}

func TestAnalyze_UnrecognizedSubcomponentID(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"segmentation","session_id":"s-gen"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.AnalysisResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "segmentation", res.SubcomponentID)
	assert.Len(t, res.Dimensions, 5)
	assert.InDelta(t, 50, res.OverallScore, 0.001)
}

func TestAnalyze_RateLimited(t *testing.T) {
	h := newTestServer(t, Options{RateLimit: 0.001, Burst: 1}).Handler()

	first := do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"3-1"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"3-1"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Reads are not throttled.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestSubcomponentEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodGet, "/v1/subcomponents/3-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Name       string            `json:"name"`
		Dimensions []model.Dimension `json:"dimensions"`
		Defaulted  bool              `json:"defaulted"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Market Segmentation", body.Name)
	assert.Len(t, body.Dimensions, 5)
	assert.False(t, body.Defaulted)

	w = do(t, h, http.MethodGet, "/v1/subcomponents/14-6", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Defaulted)

	w = do(t, h, http.MethodGet, "/v1/subcomponents/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Defaulted)
	assert.Len(t, body.Dimensions, 5)
}

func TestSessionEndpoint_NotFound(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session not found", errorBody(t, w))
}

func TestReportEndpoint(t *testing.T) {
	h := newTestServer(t, Options{DefaultFormat: "html"}).Handler()
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"3-1","session_id":"r1"}`).Code)

	w := do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/r1/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, render.HTML{}.ContentType(), w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "scorecard-3-1-r1.html")
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")

	w = do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/r1/report?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	w = do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/r1/report?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/v1/subcomponents/3-1/sessions/nope/report", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodGet, "/v1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, s := range []string{"a", "b"} {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"3-1","session_id":"`+s+`"}`).Code)
	}
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/analysis", `{"subcomponent_id":"4-1","session_id":"c"}`).Code)

	w = do(t, h, http.MethodGet, "/v1/history?subcomponent=3-1&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var recs []model.HistoryRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "3-1", recs[0].SubcomponentID)

	w = do(t, h, http.MethodGet, "/v1/history?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, http.MethodGet, "/v1/history?offset=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchemaEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := do(t, h, http.MethodGet, "/v1/schema/request", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subcomponent_id"`)

	w = do(t, h, http.MethodGet, "/v1/schema/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWriteServiceError_Timeout(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()
	s.writeServiceError(w, render.ErrTimeout)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = httptest.NewRecorder()
	s.writeServiceError(w, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", errorBody(t, w))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, Options{CORSOrigins: []string{"https://app.example.com"}}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/v1/analysis", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newTestServer(t, Options{}).Handler()

	// Find a free port.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- ListenAndServe(ctx, h, port)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	var ready bool
	for i := 0; i < 50; i++ {
		resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			resp.Body.Close()
			ready = resp.StatusCode == http.StatusOK
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
