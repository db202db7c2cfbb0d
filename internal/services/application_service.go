package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jobhive_backend/internal/auth"
	"jobhive_backend/internal/config"
	"jobhive_backend/internal/email"
	"jobhive_backend/internal/logger"
	"jobhive_backend/internal/models"
	"jobhive_backend/internal/repositories"
	"jobhive_backend/internal/services/dto"
	"jobhive_backend/internal/storage"
	"jobhive_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(ctx context.Context, identity auth.Identity, jobID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListApplicants(identity auth.Identity, jobID string) (*dto.JobResponse, error)
	UpdateApplicationStatus(identity auth.Identity, jobID string, req *dto.UpdateApplicationStatusRequest) error
	LikeJob(identity auth.Identity, jobID string) (*dto.JobResponse, error)
}

type ApplicationServiceImpl struct {
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	fileStorage   storage.Storage
	emailProvider email.Provider
}

func NewApplicationService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	fileStorage storage.Storage,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		emailProvider: emailProvider,
	}
}

// Apply - отклик на вакансию. Файл резюме пишется до вставки строки;
// если вставка не прошла, файл удаляется.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, identity auth.Identity, jobID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	// Ранний отказ до записи файла; уникальный индекс закрывает гонку ниже
	if job.HasApplicant(identity.UserID) {
		return nil, apperrors.ErrAlreadyApplied
	}

	if strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, apperrors.ErrPhoneRequired
	}

	if req.Resume == nil {
		return nil, apperrors.ErrResumeRequired
	}

	cfg := config.GetConfig()

	ext := strings.ToLower(filepath.Ext(req.Resume.Filename))
	if !allowedExtension(ext, cfg.Upload.AllowedExtensions) {
		return nil, apperrors.ErrResumeBadExtension
	}

	if req.Resume.Size > cfg.Upload.MaxResumeSize {
		return nil, apperrors.ErrResumeTooLarge
	}

	file, err := req.Resume.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	resumePath := fmt.Sprintf("resumes/%s_%d%s", identity.UserID, time.Now().UnixNano(), ext)

	if err := s.fileStorage.Save(ctx, resumePath, file); err != nil {
		return nil, apperrors.InternalError(err)
	}

	app := &models.Application{
		JobID:       jobID,
		ApplicantID: identity.UserID,
		ResumePath:  s.fileStorage.GetURL(resumePath),
		PhoneNumber: req.PhoneNumber,
		CoverLetter: req.CoverLetter,
		AppliedAt:   time.Now(),
		Status:      models.ApplicationStatusPending,
	}

	if err := s.jobRepo.CreateApplication(app); err != nil {
		// Строка не вставилась - файл не должен остаться сиротой
		if delErr := s.fileStorage.Delete(ctx, resumePath); delErr != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned resume", delErr, "path", resumePath)
		}

		if apperrors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.AddAppliedJob(identity.UserID, jobID); err != nil {
		logger.CtxWithError(ctx, "failed to mirror applied job", err, "user_id", identity.UserID, "job_id", jobID)
	}

	go s.notifyRecruiter(job, identity.UserID)

	applicant, err := s.userRepo.FindByID(identity.UserID)
	if err == nil {
		app.Applicant = applicant
	}

	return dto.NewApplicationResponse(app), nil
}

// ListApplicants - полный список откликов вакансии, только владелец или админ
func (s *ApplicationServiceImpl) ListApplicants(identity auth.Identity, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CanViewApplicants(identity, job) {
		return nil, apperrors.ErrNotJobOwner
	}

	withApplicants, err := s.jobRepo.FindByIDWithApplicants(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(withApplicants, true), nil
}

// UpdateApplicationStatus - смена статуса отклика владельцем вакансии.
// Переходы между статусами не ограничены.
func (s *ApplicationServiceImpl) UpdateApplicationStatus(identity auth.Identity, jobID string, req *dto.UpdateApplicationStatusRequest) error {
	status := models.ApplicationStatus(req.Status)
	if !models.ValidApplicationStatus(status) {
		return apperrors.NewBadRequestError("Invalid application status")
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CanManageJob(identity, job) {
		return apperrors.ErrNotJobOwner
	}

	if err := s.jobRepo.UpdateApplicationStatus(jobID, req.ApplicationID, status); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}

	go s.notifyApplicant(job, req.ApplicationID, status)

	return nil
}

// LikeJob - идемпотентный переключатель лайка, зеркалится в savedJobs
func (s *ApplicationServiceImpl) LikeJob(identity auth.Identity, jobID string) (*dto.JobResponse, error) {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	liked, err := s.jobRepo.ToggleLike(jobID, identity.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if liked {
		err = s.userRepo.AddSavedJob(identity.UserID, jobID)
	} else {
		err = s.userRepo.RemoveSavedJob(identity.UserID, jobID)
	}
	if err != nil {
		logger.WithError(err).Warn("failed to mirror saved job", "user_id", identity.UserID, "job_id", jobID)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(job, false), nil
}

func (s *ApplicationServiceImpl) notifyRecruiter(job *models.Job, applicantID string) {
	recruiter, err := s.userRepo.FindByID(job.PostedByID)
	if err != nil {
		logger.WithError(err).Warn("failed to load recruiter for notification", "job_id", job.ID)
		return
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		logger.WithError(err).Warn("failed to load applicant for notification", "job_id", job.ID)
		return
	}

	if err := s.emailProvider.SendApplicationReceived(recruiter, job, applicant); err != nil {
		logger.WithError(err).Warn("failed to send application email", "job_id", job.ID)
	}
}

func (s *ApplicationServiceImpl) notifyApplicant(job *models.Job, applicationID string, status models.ApplicationStatus) {
	var applicantID string
	for i := range job.Applications {
		if job.Applications[i].ID == applicationID {
			applicantID = job.Applications[i].ApplicantID
			break
		}
	}
	if applicantID == "" {
		return
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		logger.WithError(err).Warn("failed to load applicant for status email", "application_id", applicationID)
		return
	}

	if err := s.emailProvider.SendApplicationStatus(applicant, job, status); err != nil {
		logger.WithError(err).Warn("failed to send status email", "application_id", applicationID)
	}
}

func allowedExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}
