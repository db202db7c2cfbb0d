package dto

import (
	"mime/multipart"
	"time"

	"jobhive_backend/internal/models"
)

// ApplyRequest приходит multipart-формой: файл резюме + контактные поля
type ApplyRequest struct {
	Resume      *multipart.FileHeader `form:"resume"`
	PhoneNumber string                `form:"phoneNumber"`
	CoverLetter string                `form:"coverLetter"`
}

type UpdateApplicationStatusRequest struct {
	ApplicationID string `json:"applicationId" binding:"required" validate:"required"`
	Status        string `json:"status" binding:"required" validate:"required,is-application-status"`
}

type ApplicationResponse struct {
	ID          string                     `json:"id"`
	JobID       string                     `json:"jobId"`
	Applicant   models.ApplicantProjection `json:"applicant"`
	ResumeURL   string                     `json:"resumeUrl"`
	PhoneNumber string                     `json:"phoneNumber"`
	CoverLetter string                     `json:"coverLetter"`
	AppliedAt   time.Time                  `json:"appliedAt"`
	Status      models.ApplicationStatus   `json:"status"`
}

func NewApplicationResponse(app *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ResumeURL:   app.ResumePath,
		PhoneNumber: app.PhoneNumber,
		CoverLetter: app.CoverLetter,
		AppliedAt:   app.AppliedAt,
		Status:      app.Status,
	}

	if app.Applicant != nil {
		resp.Applicant = app.Applicant.AsApplicant()
	} else {
		resp.Applicant = models.ApplicantProjection{ID: app.ApplicantID}
	}

	return resp
}
