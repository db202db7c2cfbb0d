package models

type UserRole string
type JobStatus string
type JobType string
type SalaryPeriod string
type ApplicationStatus string

const (
	UserRoleJobseeker UserRole = "jobseeker"
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"

	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"

	SalaryPeriodYear  SalaryPeriod = "Year"
	SalaryPeriodMonth SalaryPeriod = "Month"
	SalaryPeriodHour  SalaryPeriod = "Hour"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// ValidUserRole проверяет, входит ли роль в закрытый набор
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleJobseeker, UserRoleRecruiter, UserRoleAdmin:
		return true
	}
	return false
}

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

// ValidApplicationStatus проверяет статус отклика.
// Переходы любые: hired может вернуться в pending, это сознательное поведение продукта.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusRejected,
		ApplicationStatusShortlisted, ApplicationStatusHired:
		return true
	}
	return false
}
