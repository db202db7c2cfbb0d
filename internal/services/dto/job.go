package dto

import (
	"encoding/json"
	"time"

	"jobhive_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Salary      float64  `json:"salary"`
	SalaryType  string   `json:"salaryType" validate:"omitempty,oneof=Year Month Hour"`
	Negotiable  bool     `json:"negotiable"`
	JobType     string   `json:"jobType" validate:"omitempty,is-job-type"`
	Tags        []string `json:"tags"`
	Skills      []string `json:"skills"`
	Status      string   `json:"status" validate:"omitempty,is-job-status"`
}

type UpdateJobRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Location    *string   `json:"location" validate:"omitempty,min=1,max=100"`
	Salary      *float64  `json:"salary" validate:"omitempty,gte=0"`
	SalaryType  *string   `json:"salaryType" validate:"omitempty,oneof=Year Month Hour"`
	Negotiable  *bool     `json:"negotiable"`
	JobType     *string   `json:"jobType" validate:"omitempty,is-job-type"`
	Tags        *[]string `json:"tags"`
	Skills      *[]string `json:"skills"`
	Status      *string   `json:"status" validate:"omitempty,is-job-status"`
}

type SearchJobsRequest struct {
	Tags     string `form:"tags"`
	Location string `form:"location"`
	Title    string `form:"title"`
}

type JobResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	Salary      float64                `json:"salary"`
	SalaryType  models.SalaryPeriod    `json:"salaryType"`
	Negotiable  bool                   `json:"negotiable"`
	JobType     models.JobType         `json:"jobType"`
	Tags        []string               `json:"tags"`
	Skills      []string               `json:"skills"`
	Status      models.JobStatus       `json:"status"`
	PostedBy    models.OwnerProjection `json:"postedBy"`
	Likes       []string               `json:"likes"`
	// Legacy-проекция: производная от applications, отдельно не хранится
	Applicants   []string              `json:"applicants"`
	Applications []ApplicationResponse `json:"applications,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// NewJobResponse строит публичный ответ по вакансии.
// includeApplications включает полные отклики - только для владельца.
func NewJobResponse(job *models.Job, includeApplications bool) *JobResponse {
	resp := &JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		SalaryType:  job.SalaryPeriod,
		Negotiable:  job.Negotiable,
		JobType:     job.JobType,
		Tags:        []string{},
		Skills:      []string{},
		Status:      job.Status,
		Likes:       job.LikeIDs(),
		Applicants:  job.ApplicantIDs(),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}

	if len(job.Tags) > 0 {
		_ = json.Unmarshal(job.Tags, &resp.Tags)
	}
	if len(job.Skills) > 0 {
		_ = json.Unmarshal(job.Skills, &resp.Skills)
	}

	if job.PostedBy != nil {
		resp.PostedBy = job.PostedBy.AsOwner()
	} else {
		resp.PostedBy = models.OwnerProjection{ID: job.PostedByID}
	}

	if includeApplications {
		for i := range job.Applications {
			resp.Applications = append(resp.Applications, *NewApplicationResponse(&job.Applications[i]))
		}
	}

	return resp
}
