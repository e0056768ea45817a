package resumecheck

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the resume check service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume check routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume-check", h.check)
	rg.POST("/skill-recommendations", h.recommend)
}

type checkRequest struct {
	ResumeData     string `json:"resumeData"`
	JobDescription string `json:"jobDescription"`
	AnalysisType   string `json:"analysisType"`
}

func (h *Handler) check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeData == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeData is required", nil)
		return
	}

	result, err := h.Svc.Check(c.Request.Context(), req.ResumeData, req.JobDescription, req.AnalysisType)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusBadRequest, "no_text", "could not extract text from resume or resume has insufficient content", nil)
		case errors.Is(err, ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "unavailable", "resume analysis is not available", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":              true,
		"atsScore":             result.ATSScore,
		"skillMatches":         result.SkillMatches,
		"suggestions":          result.Suggestions,
		"skillRecommendations": result.Recommendations,
		"fullAnalysis":         result.FullAnalysis,
		"jobRole":              result.JobRole,
		"jobDescription":       result.JobDescription,
	})
}

type recommendRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeText is required", nil)
		return
	}

	recommendations := h.Svc.Recommend(c.Request.Context(), req.ResumeText, req.JobDescription)
	respond.JSON(c, http.StatusOK, gin.H{
		"success":         true,
		"recommendations": recommendations,
	})
}
