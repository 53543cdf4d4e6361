package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/internal/domain/usecase"
)

type JobRegistry interface {
	Create(ctx context.Context, p entity.Principal, in usecase.CreateJobInput) (*entity.Job, error)
	Search(ctx context.Context, filter entity.SearchFilter) ([]entity.Job, error)
	GetByID(ctx context.Context, jobID string) (*entity.Job, error)
	ListByEmployer(ctx context.Context, p entity.Principal) ([]entity.Job, error)
	Update(ctx context.Context, p entity.Principal, jobID string, in usecase.UpdateJobInput) (*entity.Job, error)
	Delete(ctx context.Context, p entity.Principal, jobID string) error
}

type ApplicationTracker interface {
	Apply(ctx context.Context, p entity.Principal, jobID string) error
	ListBySeeker(ctx context.Context, p entity.Principal) ([]entity.SeekerApplication, error)
	ListApplicants(ctx context.Context, p entity.Principal, jobID string) ([]entity.ApplicantView, error)
	UpdateStatus(ctx context.Context, p entity.Principal, jobID, applicantID string, status entity.ApplicationStatus) error
}

type JobHandler struct {
	Registry JobRegistry
	Tracker  ApplicationTracker
}

func NewJobHandler(registry JobRegistry, tracker ApplicationTracker) *JobHandler {
	return &JobHandler{Registry: registry, Tracker: tracker}
}

type jobRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Salary      string     `json:"salary"`
	Type        string     `json:"type"`
	Deadline    *time.Time `json:"deadline"`
}

func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.Registry.Create(c.Request.Context(), principalFrom(c), usecase.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        entity.JobType(req.Type),
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.Registry.Search(c.Request.Context(), entity.SearchFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		Type:     entity.JobType(c.Query("type")),
		Search:   c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.Registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) EmployerJobs(c *gin.Context) {
	jobs, err := h.Registry.ListByEmployer(c.Request.Context(), principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

type updateJobRequest struct {
	Deadline *time.Time `json:"deadline"`
}

func (h *JobHandler) Update(c *gin.Context) {
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.Registry.Update(c.Request.Context(), principalFrom(c), c.Param("id"), usecase.UpdateJobInput{
		Deadline: req.Deadline,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.Registry.Delete(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

func (h *JobHandler) Apply(c *gin.Context) {
	if err := h.Tracker.Apply(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "applied"})
}

func (h *JobHandler) SeekerApplications(c *gin.Context) {
	apps, err := h.Tracker.ListBySeeker(c.Request.Context(), principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *JobHandler) Applicants(c *gin.Context) {
	applicants, err := h.Tracker.ListApplicants(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": applicants})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) UpdateApplicantStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.Tracker.UpdateStatus(
		c.Request.Context(),
		principalFrom(c),
		c.Param("id"),
		c.Param("applicantId"),
		entity.ApplicationStatus(req.Status),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
