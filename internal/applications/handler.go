package applications

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the applications service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/applications", h.createApplication)
	rg.GET("/applications/:id", h.getApplication)
	rg.PUT("/applications/:id/status", h.updateStatus)
	rg.GET("/applications/:id/feedback", h.getFeedback)
	rg.POST("/jobs/:id/reanalyze", h.reanalyzeJob)
}

type analyzeRequest struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ApplicationID == "" || req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "application_id and job_id are required", nil)
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), req.ApplicationID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze application", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":  true,
		"analysis": result,
	})
}

type createApplicationRequest struct {
	JobID          string `json:"jobId"`
	ApplicantID    string `json:"applicantId"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	ResumeData     string `json:"resumeData"`
}

func (h *Handler) createApplication(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobId is required", nil)
		return
	}

	app, err := h.Svc.Create(c.Request.Context(), Application{
		JobID:          req.JobID,
		ApplicantID:    req.ApplicantID,
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		ResumeData:     req.ResumeData,
	})
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create application", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success":     true,
		"application": app,
	})
}

func (h *Handler) getApplication(c *gin.Context) {
	applicationID := c.Param("id")
	if applicationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "application id is required", nil)
		return
	}

	app, err := h.Svc.Get(c.Request.Context(), applicationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":     true,
		"application": app,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	applicationID := c.Param("id")
	if applicationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "application id is required", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Status == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	feedback, err := h.Svc.UpdateStatus(c.Request.Context(), applicationID, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid status value", []map[string]string{
				{"field": "status", "issue": "must be one of pending, reviewed, shortlisted, rejected"},
			})
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application status", nil)
		}
		return
	}

	resp := gin.H{
		"success": true,
		"status":  req.Status,
	}
	if req.Status == StatusRejected || req.Status == StatusShortlisted {
		resp["feedback"] = feedback
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getFeedback(c *gin.Context) {
	applicationID := c.Param("id")
	if applicationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "application id is required", nil)
		return
	}

	view, err := h.Svc.GetFeedback(c.Request.Context(), applicationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to get application feedback", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":     true,
		"application": view,
	})
}

func (h *Handler) reanalyzeJob(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job id is required", nil)
		return
	}

	results, err := h.Svc.ReanalyzeJob(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reanalyze applications", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Reanalyzed %d applications", len(results)),
		"results": results,
	})
}
