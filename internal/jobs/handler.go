package jobs

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs repository.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.createJob)
	rg.GET("/jobs", h.listJobs)
	rg.GET("/jobs/:id", h.getJob)
}

type createJobRequest struct {
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Description string           `json:"description"`
	Skills      []matching.Skill `json:"skills"`
}

func (h *Handler) createJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		return
	}
	for _, skill := range req.Skills {
		if skill.Name == "" || skill.Weight < 0 || skill.Weight > 100 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "skills must have a name and a weight in [0,100]", nil)
			return
		}
	}

	job := Job{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Skills:      req.Skills,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), job); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success": true,
		"job":     job,
	})
}

func (h *Handler) getJob(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job id is required", nil)
		return
	}

	job, err := h.Repo.GetByID(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

func (h *Handler) listJobs(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	jobs, err := h.Repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"jobs":    jobs,
	})
}
