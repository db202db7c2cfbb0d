package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Location    string `gorm:"not null;index" json:"location"`

	Salary       float64      `gorm:"not null" json:"salary"`
	SalaryPeriod SalaryPeriod `gorm:"type:varchar(10);default:'Year'" json:"salaryType"`
	Negotiable   bool         `gorm:"default:false" json:"negotiable"`

	JobType JobType        `gorm:"type:varchar(20);not null" json:"jobType"`
	Tags    datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Skills  datatypes.JSON `gorm:"type:jsonb" json:"skills"`

	Status JobStatus `gorm:"type:varchar(10);not null;default:'open';index" json:"status"`

	// Владелец неизменяем после создания
	PostedByID string `gorm:"type:uuid;not null;index" json:"postedById"`
	PostedBy   *User  `gorm:"foreignKey:PostedByID" json:"-"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
	Likes        []JobLike     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// Application - отклик соискателя на вакансию.
// Уникальный индекс (job_id, applicant_id) является единственным источником
// истины для правила "один отклик на пару (вакансия, соискатель)" и
// атомарно закрывает гонку двойного apply.
type Application struct {
	BaseModel
	JobID       string `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"jobId"`
	ApplicantID string `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"applicantId"`
	Applicant   *User  `gorm:"foreignKey:ApplicantID" json:"-"`

	ResumePath  string            `gorm:"not null" json:"resumeUrl"`
	PhoneNumber string            `gorm:"not null" json:"phoneNumber"`
	CoverLetter string            `gorm:"default:''" json:"coverLetter"`
	AppliedAt   time.Time         `gorm:"not null" json:"appliedAt"`
	Status      ApplicationStatus `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
}

// JobLike - членство пользователя в множестве лайков вакансии
type JobLike struct {
	BaseModel
	JobID  string `gorm:"type:uuid;not null;uniqueIndex:idx_job_liker" json:"jobId"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_job_liker" json:"userId"`
}

// ApplicantIDs возвращает производный legacy-список соискателей.
// Раньше он хранился отдельным полем и расходился с applications,
// теперь это только проекция на границе API.
func (j *Job) ApplicantIDs() []string {
	ids := make([]string, 0, len(j.Applications))
	for _, app := range j.Applications {
		ids = append(ids, app.ApplicantID)
	}
	return ids
}

// LikeIDs возвращает множество лайков как список id пользователей
func (j *Job) LikeIDs() []string {
	ids := make([]string, 0, len(j.Likes))
	for _, l := range j.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// HasApplicant проверяет членство соискателя в производном множестве
func (j *Job) HasApplicant(userID string) bool {
	for _, app := range j.Applications {
		if app.ApplicantID == userID {
			return true
		}
	}
	return false
}
