package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRenderCounters(t *testing.T) {
	IncEvaluationStarted()
	IncEvaluationCompleted()
	IncEvaluationFailed()
	IncEvaluationJobsReceived()
	IncEvaluationJobsCompleted()
	IncEvaluationJobsFailed()
	IncEvaluationJobsDeletedUnrecoverable()

	out := Render()
	for _, name := range []string{
		"evaluation_started_total",
		"evaluation_completed_total",
		"evaluation_failed_total",
		"evaluation_jobs_received_total",
		"evaluation_jobs_completed_total",
		"evaluation_jobs_failed_total",
		"evaluation_jobs_deleted_unrecoverable_total",
	} {
		if !strings.Contains(out, "# TYPE "+name+" counter") {
			t.Errorf("missing TYPE line for %s", name)
		}
		if strings.Contains(out, name+" 0\n") {
			t.Errorf("counter %s still zero after increment", name)
		}
	}
}

func TestRenderHistogram(t *testing.T) {
	ObserveEvaluationDurationMs(350)
	ObserveEvaluationDurationMs(-5)

	out := Render()
	if !strings.Contains(out, "# TYPE evaluation_duration_ms histogram") {
		t.Fatal("missing histogram TYPE line")
	}
	if !strings.Contains(out, `evaluation_duration_ms_bucket{le="+Inf"}`) {
		t.Fatal("missing +Inf bucket")
	}
	if !strings.Contains(out, "evaluation_duration_ms_count") {
		t.Fatal("missing histogram count")
	}
}

func TestHandlerContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/plain; version=0.0.4" {
		t.Fatalf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "evaluation_started_total") {
		t.Fatal("body missing counter output")
	}
}
