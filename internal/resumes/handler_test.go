package resumes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"relevance-backend/internal/shared/storage/object/local"
)

const sampleResumeText = `Jane Doe
jane.doe@example.com
+1 555 123 4567

Skills: Python, SQL, Docker and AWS.

Education
Bachelor of Technology in Computer Science, 2016-2020

Experience
Software Engineer at Initech
Built data pipelines with Python and SQL for 3 years.
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func uploadResume(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadResume(t *testing.T) {
	router := newTestRouter(t)

	rec := uploadResume(t, router, "jane.txt", sampleResumeText)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp CandidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected non-empty id")
	}
	if resp.CandidateEmail != "jane.doe@example.com" {
		t.Fatalf("candidateEmail = %q", resp.CandidateEmail)
	}
	if len(resp.Parsed.Skills) == 0 {
		t.Fatal("expected parsed skills")
	}
}

func TestUploadResumeMissingFile(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetResumeRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := uploadResume(t, router, "jane.txt", sampleResumeText)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}
	var created CandidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}
	var fetched CandidateResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal fetched: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("id = %q, want %q", fetched.ID, created.ID)
	}
	if fetched.FileName != "jane.txt" {
		t.Fatalf("fileName = %q", fetched.FileName)
	}
}
