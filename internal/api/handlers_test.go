package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskrank/taskrank/internal/engine"
	"github.com/taskrank/taskrank/internal/store"
	"github.com/taskrank/taskrank/internal/task"
)

var fixedToday = task.Date(2026, time.March, 2)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewServer(
		engine.New(engine.DefaultOptions()),
		st,
		WithClock(func() time.Time { return fixedToday }),
		WithSuggestLimit(3),
	)
}

func postAnalyze(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestAnalyze_RanksValidBatch(t *testing.T) {
	s := testServer(t)

	w := postAnalyze(t, s, []map[string]any{
		{"id": "t1", "title": "design", "importance": 8, "estimated_hours": 1, "due_date": "2026-03-12"},
		{"id": "t2", "title": "build", "importance": 3, "estimated_hours": 5, "dependencies": []string{"t1"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.ScoredTasks, 2)
	assert.Equal(t, "t1", resp.ScoredTasks[0].ID, "unblocked task first")
	assert.False(t, resp.ScoredTasks[0].Blocked)
	assert.True(t, resp.ScoredTasks[1].Blocked)
	assert.Empty(t, resp.CyclicTaskIDs)
	assert.Empty(t, resp.Rejected)
}

func TestAnalyze_AllInvalidIsClientError(t *testing.T) {
	s := testServer(t)

	w := postAnalyze(t, s, []map[string]any{
		{"title": ""},
		{"title": "late", "due_date": "2020-01-01"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Rejected, 2)
	assert.Empty(t, resp.ScoredTasks)
}

func TestAnalyze_PartialBatchProceeds(t *testing.T) {
	s := testServer(t)

	w := postAnalyze(t, s, []map[string]any{
		{"id": "good", "title": "fine"},
		{"title": "broken", "estimated_hours": 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.ScoredTasks, 1)
	assert.Equal(t, "good", resp.ScoredTasks[0].ID)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, 1, resp.Rejected[0].Index)
	assert.Contains(t, resp.Rejected[0].Errors[0], "greater than zero")
}

func TestAnalyze_SurfacesCycles(t *testing.T) {
	s := testServer(t)

	w := postAnalyze(t, s, []map[string]any{
		{"id": "a", "title": "a", "dependencies": []string{"b"}},
		{"id": "b", "title": "b", "dependencies": []string{"a"}},
		{"id": "solo", "title": "solo"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"a", "b"}, resp.CyclicTaskIDs)
	require.Len(t, resp.ScoredTasks, 1)
	assert.Equal(t, "solo", resp.ScoredTasks[0].ID)
}

func TestAnalyze_MalformedBody(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/analyze", bytes.NewReader([]byte(`{"not":"an array"}`)))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggest_TopUnblockedWithReasons(t *testing.T) {
	s := testServer(t)

	_, err := s.store.SaveTasks(context.Background(), []task.Task{
		{ID: "t1", Title: "design", Importance: 8, EstimatedHours: 1},
		{ID: "t2", Title: "build", Importance: 3, EstimatedHours: 5, DependsOn: []string{"t1"}},
		{ID: "t3", Title: "polish", Importance: 5, EstimatedHours: 2},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/suggest", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TopTasks []suggestion `json:"top_tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.TopTasks)
	for _, sug := range resp.TopTasks {
		assert.NotEqual(t, "t2", sug.ID, "blocked task must not be suggested")
	}
	assert.Positive(t, resp.TopTasks[0].Reason.Importance)
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
