package evaluations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"relevance-backend/internal/resumes"
	"relevance-backend/internal/shared/server/middleware"
	"relevance-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the evaluations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches evaluation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/evaluations", h.create)
	rg.GET("/evaluations/:id", h.get)
	rg.GET("/jobs/:id/results", h.resultsForJob)
	rg.POST("/jobs/:id/evaluate-all", h.evaluateAll)
	rg.GET("/resumes/:id/evaluations", h.resultsForResume)
	rg.GET("/stats", h.stats)
}

type createEvaluationRequest struct {
	ResumeID string `json:"resumeId"`
	JobID    string `json:"jobId"`
}

func (h *Handler) create(c *gin.Context) {
	var req createEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeID == "" || req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId and jobId are required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	ev, err := h.Svc.Create(ctx, req.ResumeID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrResumeNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job description not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start evaluation", nil)
		}
		return
	}

	respond.Accepted(c, gin.H{
		"evaluationId": ev.ID,
		"status":       ev.Status,
	})
}

func (h *Handler) evaluateAll(c *gin.Context) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	created, err := h.Svc.EvaluateAll(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job description not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start batch evaluation", nil)
		}
		return
	}

	ids := make([]string, 0, len(created))
	for _, ev := range created {
		ids = append(ids, ev.ID)
	}
	respond.Accepted(c, gin.H{
		"jobId":         c.Param("id"),
		"requested":     len(ids),
		"evaluationIds": ids,
	})
}

func (h *Handler) get(c *gin.Context) {
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}

	ev, err := h.Svc.Get(c.Request.Context(), evaluationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch evaluation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(ev))
}

func (h *Handler) resultsForJob(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job id is required", nil)
		return
	}

	filter := ResultFilter{
		Limit:  parseIntQuery(c, "limit", 20, 100),
		Offset: parseIntQuery(c, "offset", 0, 1<<30),
	}
	if v := c.Query("minScore"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "minScore must be between 0 and 1", nil)
			return
		}
		filter.MinScore = parsed
	}
	if v := c.Query("verdict"); v != "" {
		switch v {
		case "High", "Medium", "Low":
			filter.Verdict = v
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "verdict must be High, Medium or Low", nil)
			return
		}
	}

	evals, err := h.Svc.ResultsForJob(c.Request.Context(), jobID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list results", nil)
		return
	}

	resp := make([]gin.H, 0, len(evals))
	for _, ev := range evals {
		entry := gin.H{
			"evaluationId":    ev.ID,
			"resumeId":        ev.ResumeID,
			"finalScore":      ev.FinalScore,
			"relevanceScore":  ev.PercentageScore,
			"verdict":         ev.Verdict,
			"confidenceScore": ev.ConfidenceScore,
			"completedAt":     ev.CompletedAt,
		}
		if cand, err := h.Svc.Resumes.GetByID(c.Request.Context(), ev.ResumeID); err == nil {
			entry["candidateName"] = cand.CandidateName
			entry["fileName"] = cand.FileName
		}
		resp = append(resp, entry)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) resultsForResume(c *gin.Context) {
	resumeID := c.Param("id")
	if resumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume id is required", nil)
		return
	}

	limit := parseIntQuery(c, "limit", 20, 100)
	offset := parseIntQuery(c, "offset", 0, 1<<30)

	evals, err := h.Svc.ResultsForResume(c.Request.Context(), resumeID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list evaluations", nil)
		}
		return
	}

	resp := make([]EvaluationResponse, 0, len(evals))
	for _, ev := range evals {
		resp = append(resp, toResponse(ev))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}

func parseIntQuery(c *gin.Context, name string, def, max int) int {
	value := def
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			value = parsed
		}
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	return value
}
