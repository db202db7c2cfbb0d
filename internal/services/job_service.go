package services

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"jobhive_backend/internal/auth"
	"jobhive_backend/internal/models"
	"jobhive_backend/internal/repositories"
	"jobhive_backend/internal/services/dto"
	"jobhive_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(identity auth.Identity, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(jobID string) (*dto.JobResponse, error)
	ListJobs() ([]dto.JobResponse, error)
	SearchJobs(req *dto.SearchJobsRequest) ([]dto.JobResponse, error)
	ListJobsByOwner(ownerID string) ([]dto.JobResponse, error)
	UpdateJob(identity auth.Identity, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(identity auth.Identity, jobID string) error
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, userRepo: userRepo}
}

// CreateJob - публикация вакансии. Владелец берется из токена,
// поле postedBy в теле запроса игнорируется.
func (s *JobServiceImpl) CreateJob(identity auth.Identity, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !auth.CanPostJobs(identity) {
		return nil, apperrors.NewForbiddenError("Only recruiters can post jobs")
	}

	// Отсутствующие обязательные поля называются по одному
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.MissingField("title")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.MissingField("description")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, apperrors.MissingField("location")
	}
	if req.Salary <= 0 {
		return nil, apperrors.MissingField("salary")
	}
	if strings.TrimSpace(req.JobType) == "" {
		return nil, apperrors.MissingField("jobType")
	}
	if len(normalizeList(req.Tags)) == 0 {
		return nil, apperrors.MissingField("tags")
	}
	if len(normalizeList(req.Skills)) == 0 {
		return nil, apperrors.MissingField("skills")
	}

	salaryPeriod := models.SalaryPeriod(req.SalaryType)
	if salaryPeriod == "" {
		salaryPeriod = models.SalaryPeriodYear
	}

	jobType := models.JobType(req.JobType)
	if !models.ValidJobType(jobType) {
		return nil, apperrors.NewBadRequestError("Invalid job type")
	}

	status := models.JobStatus(req.Status)
	if status == "" {
		status = models.JobStatusOpen
	}
	if !models.ValidJobStatus(status) {
		return nil, apperrors.NewBadRequestError("Invalid job status")
	}

	tagsJSON, err := json.Marshal(normalizeList(req.Tags))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	skillsJSON, err := json.Marshal(normalizeList(req.Skills))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Location:     req.Location,
		Salary:       req.Salary,
		SalaryPeriod: salaryPeriod,
		Negotiable:   req.Negotiable,
		JobType:      jobType,
		Tags:         datatypes.JSON(tagsJSON),
		Skills:       datatypes.JSON(skillsJSON),
		Status:       status,
		PostedByID:   identity.UserID,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Перечитываем с владельцем для полного ответа
	created, err := s.jobRepo.FindByID(job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(created, false), nil
}

// GetJob - публичная карточка вакансии
func (s *JobServiceImpl) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(job, false), nil
}

// ListJobs - публичный список, только открытые вакансии
func (s *JobServiceImpl) ListJobs() ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindOpen()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toJobResponses(jobs), nil
}

// SearchJobs - поиск по тегам, локации и заголовку, только открытые
func (s *JobServiceImpl) SearchJobs(req *dto.SearchJobsRequest) ([]dto.JobResponse, error) {
	criteria := repositories.JobSearchCriteria{
		Location: strings.TrimSpace(req.Location),
		Title:    strings.TrimSpace(req.Title),
	}

	// tags=go,backend -> любой из тегов
	for _, tag := range strings.Split(req.Tags, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			criteria.Tags = append(criteria.Tags, t)
		}
	}

	jobs, err := s.jobRepo.Search(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toJobResponses(jobs), nil
}

// ListJobsByOwner - вакансии рекрутера, включая закрытые и черновики
func (s *JobServiceImpl) ListJobsByOwner(ownerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toJobResponses(jobs), nil
}

// UpdateJob - частичное обновление, только владелец или админ.
// Владелец вакансии неизменяем.
func (s *JobServiceImpl) UpdateJob(identity auth.Identity, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CanManageJob(identity, job) {
		return nil, apperrors.ErrNotJobOwner
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.SalaryType != nil {
		job.SalaryPeriod = models.SalaryPeriod(*req.SalaryType)
	}
	if req.Negotiable != nil {
		job.Negotiable = *req.Negotiable
	}
	if req.JobType != nil {
		jobType := models.JobType(*req.JobType)
		if !models.ValidJobType(jobType) {
			return nil, apperrors.NewBadRequestError("Invalid job type")
		}
		job.JobType = jobType
	}
	if req.Tags != nil {
		tagsJSON, err := json.Marshal(normalizeList(*req.Tags))
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Tags = datatypes.JSON(tagsJSON)
	}
	if req.Skills != nil {
		skillsJSON, err := json.Marshal(normalizeList(*req.Skills))
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Skills = datatypes.JSON(skillsJSON)
	}
	if req.Status != nil {
		status := models.JobStatus(*req.Status)
		if !models.ValidJobStatus(status) {
			return nil, apperrors.NewBadRequestError("Invalid job status")
		}
		job.Status = status
	}

	if err := s.jobRepo.Update(job); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(updated, false), nil
}

// DeleteJob - удаление вместе с откликами и лайками, только владелец или админ
func (s *JobServiceImpl) DeleteJob(identity auth.Identity, jobID string) error {
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

	if err := s.jobRepo.Delete(jobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}

	return nil
}

func toJobResponses(jobs []models.Job) []dto.JobResponse {
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i], false))
	}
	return responses
}

// normalizeList убирает пустые элементы и пробелы по краям
func normalizeList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
