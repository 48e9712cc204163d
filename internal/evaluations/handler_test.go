package evaluations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, repo, _, _ := newTestService(t)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc, repo
}

func TestCreateEvaluationAccepted(t *testing.T) {
	router, _, repo := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"resumeId": "resume-1", "jobId": "job-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		EvaluationID string `json:"evaluationId"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.EvaluationID == "" || resp.Status != StatusQueued {
		t.Fatalf("resp = %+v", resp)
	}

	done := waitForTerminal(t, repo, resp.EvaluationID)
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", done.Status)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations/"+resp.EvaluationID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}
	var fetched EvaluationResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal fetched: %v", err)
	}
	if fetched.Status != StatusCompleted {
		t.Fatalf("fetched status = %q", fetched.Status)
	}
	if fetched.RelevanceScore == nil {
		t.Fatal("expected relevanceScore in completed response")
	}
}

func TestCreateEvaluationUnknownResume(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"resumeId": "missing", "jobId": "job-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestEvaluateAllEndpoint(t *testing.T) {
	router, _, repo := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/job-1/evaluate-all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		JobID         string   `json:"jobId"`
		Requested     int      `json:"requested"`
		EvaluationIDs []string `json:"evaluationIds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Requested != 1 || len(resp.EvaluationIDs) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	done := waitForTerminal(t, repo, resp.EvaluationIDs[0])
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q", done.Status)
	}
}

func TestResultsForJobRejectsBadFilters(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/jobs/job-1/results?minScore=2",
		"/api/v1/jobs/job-1/results?verdict=Great",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _, repo := newTestRouter(t)

	now := time.Now().UTC()
	ev := Evaluation{ID: "e1", JobID: "job-1", ResumeID: "resume-1", Status: StatusQueued, CreatedAt: now}
	if err := repo.Create(context.Background(), ev); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ev.FinalScore = 0.8
	ev.Verdict = "High"
	completedAt := now
	ev.CompletedAt = &completedAt
	if err := repo.SaveResult(context.Background(), ev); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	httpReq := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if stats.Total != 1 || stats.Completed != 1 || stats.HighVerdicts != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.AverageScore != 0.8 {
		t.Fatalf("averageScore = %v", stats.AverageScore)
	}
}
