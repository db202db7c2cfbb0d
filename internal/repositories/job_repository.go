package repositories

import (
	"encoding/json"
	"errors"
	"strings"

	"jobhive_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationExists    = errors.New("application already exists")
)

// JobSearchCriteria - фильтры публичного поиска вакансий.
// Отсутствующий фильтр - no-op, все заданные объединяются через AND.
type JobSearchCriteria struct {
	Tags     []string
	Location string
	Title    string
	Status   models.JobStatus
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindByIDWithApplicants(id string) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id string) error

	FindOpen() ([]models.Job, error)
	Search(criteria JobSearchCriteria) ([]models.Job, error)
	FindByOwner(ownerID string) ([]models.Job, error)

	CreateApplication(app *models.Application) error
	UpdateApplicationStatus(jobID, applicationID string, status models.ApplicationStatus) error

	ToggleLike(jobID, userID string) (liked bool, err error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("PostedBy").Preload("Applications").Preload("Likes").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindByIDWithApplicants дополнительно загружает пользователей откликов.
// Использовать только после проверки прав владельца.
func (r *JobRepositoryImpl) FindByIDWithApplicants(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("PostedBy").Preload("Applications.Applicant").Preload("Likes").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"title":         job.Title,
		"description":   job.Description,
		"location":      job.Location,
		"salary":        job.Salary,
		"salary_period": job.SalaryPeriod,
		"negotiable":    job.Negotiable,
		"job_type":      job.JobType,
		"tags":          job.Tags,
		"skills":        job.Skills,
		"status":        job.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(id string) error {
	// Вакансия удаляется вместе с откликами и лайками
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.JobLike{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) FindOpen() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("PostedBy").Preload("Applications").Preload("Likes").
		Where("status = ?", models.JobStatusOpen).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Search(criteria JobSearchCriteria) ([]models.Job, error) {
	query := r.db.Preload("PostedBy").Preload("Applications").Preload("Likes")

	status := criteria.Status
	if status == "" {
		status = models.JobStatusOpen
	}
	query = query.Where("status = ?", status)

	// JSONB: вакансия подходит, если ее набор тегов пересекается с запрошенным
	if len(criteria.Tags) > 0 {
		tagConditions := []string{}
		tagArgs := []interface{}{}

		for _, tag := range criteria.Tags {
			tagConditions = append(tagConditions, "tags::jsonb @> ?")
			tagJSON, _ := json.Marshal([]string{tag})
			tagArgs = append(tagArgs, datatypes.JSON(tagJSON))
		}

		query = query.Where("("+strings.Join(tagConditions, " OR ")+")", tagArgs...)
	}

	if criteria.Location != "" {
		query = query.Where("location ILIKE ?", "%"+criteria.Location+"%")
	}

	if criteria.Title != "" {
		query = query.Where("title ILIKE ?", "%"+criteria.Title+"%")
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByOwner(ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("PostedBy").Preload("Applications").Preload("Likes").
		Where("posted_by_id = ?", ownerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// CreateApplication вставляет отклик одной условной записью.
// Уникальный индекс (job_id, applicant_id) гарантирует, что из двух
// конкурентных apply выживает ровно один.
func (r *JobRepositoryImpl) CreateApplication(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateApplicationStatus(jobID, applicationID string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ? AND job_id = ?", applicationID, jobID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ToggleLike - идемпотентный переключатель членства в множестве лайков
func (r *JobRepositoryImpl) ToggleLike(jobID, userID string) (bool, error) {
	var liked bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("job_id = ? AND user_id = ?", jobID, userID).Delete(&models.JobLike{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &models.JobLike{JobID: jobID, UserID: userID}
		if err := tx.Create(like).Error; err != nil {
			// Проигравший гонку повторного лайка считается уже поставившим
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})

	return liked, err
}
