package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhive_backend/internal/middleware"
	"jobhive_backend/internal/models"
	"jobhive_backend/internal/services"
	"jobhive_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

// RegisterRoutes регистрирует маршруты вакансий и откликов
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		// Публичные маршруты
		jobs.GET("", h.ListJobs)
		jobs.GET("/search", h.SearchJobs)
		jobs.GET("/:id", h.GetJob)
	}

	protected := rg.Group("/jobs")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin), h.CreateJob)
		protected.GET("/user/myjobs", middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin), h.MyJobs)
		protected.PUT("/:id", h.UpdateJob)
		protected.DELETE("/:id", h.DeleteJob)

		protected.PUT("/:id/apply", h.Apply)
		protected.PUT("/:id/like", h.LikeJob)

		protected.GET("/:id/applicants", h.ListApplicants)
		protected.PUT("/:id/applicants", h.UpdateApplicationStatus)
	}
}

// ListJobs godoc
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Success      200 {object} map[string][]dto.JobResponse
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.ListJobs()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// SearchJobs godoc
// @Summary      Search open jobs by tags, location and title
// @Tags         jobs
// @Produce      json
// @Param        tags     query string false "Comma-separated tags, any match"
// @Param        location query string false "Location substring"
// @Param        title    query string false "Title substring"
// @Success      200 {object} map[string][]dto.JobResponse
// @Router       /jobs/search [get]
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	jobs, err := h.jobService.SearchJobs(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob godoc
// @Summary      Job details
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} map[string]dto.JobResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// CreateJob godoc
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateJobRequest true "Job data"
// @Security     BearerAuth
// @Success      201 {object} map[string]dto.JobResponse
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(middleware.GetIdentity(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// MyJobs godoc
// @Summary      Jobs posted by the current recruiter
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]dto.JobResponse
// @Router       /jobs/user/myjobs [get]
func (h *JobHandler) MyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListJobsByOwner(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        request body dto.UpdateJobRequest true "Fields to update"
// @Security     BearerAuth
// @Success      200 {object} map[string]dto.JobResponse
// @Router       /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(middleware.GetIdentity(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// DeleteJob godoc
// @Summary      Delete a job posting with its applications
// @Tags         jobs
// @Param        id path string true "Job ID"
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	if err := h.jobService.DeleteJob(middleware.GetIdentity(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// Apply godoc
// @Summary      Apply for a job with a resume file
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path     string true  "Job ID"
// @Param        resume      formData file   true  "Resume file (.pdf, .doc, .docx, max 5 MiB)"
// @Param        phoneNumber formData string true  "Contact phone"
// @Param        coverLetter formData string false "Cover letter"
// @Security     BearerAuth
// @Success      200 {object} map[string]dto.ApplicationResponse
// @Router       /jobs/{id}/apply [put]
func (h *JobHandler) Apply(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), middleware.GetIdentity(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// LikeJob godoc
// @Summary      Toggle a like on a job
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Security     BearerAuth
// @Success      200 {object} map[string]dto.JobResponse
// @Router       /jobs/{id}/like [put]
func (h *JobHandler) LikeJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	job, err := h.applicationService.LikeJob(middleware.GetIdentity(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// ListApplicants godoc
// @Summary      Applications for a job, owner only
// @Tags         applications
// @Produce      json
// @Param        id path string true "Job ID"
// @Security     BearerAuth
// @Success      200 {object} map[string][]dto.ApplicationResponse
// @Router       /jobs/{id}/applicants [get]
func (h *JobHandler) ListApplicants(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	job, err := h.applicationService.ListApplicants(middleware.GetIdentity(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": job.Applications})
}

// UpdateApplicationStatus godoc
// @Summary      Change an application's status, owner only
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path string true "Job ID"
// @Param        request body dto.UpdateApplicationStatusRequest true "Application and new status"
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Router       /jobs/{id}/applicants [put]
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.applicationService.UpdateApplicationStatus(middleware.GetIdentity(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}
