package apperrors

import "net/http"

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// Фабричные функции (используются для оборачивания ошибок, напр. из репозитория)

// ErrNotFoundWrap - преобразует ошибку репозитория (типа gorm.ErrRecordNotFound)
// в AppError 404
func ErrNotFoundWrap(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflictWrap - общая фабрика для конфликтов (409)
func ErrConflictWrap(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Предопределенные переменные (для частых, статичных ошибок)

var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "user", "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "user", "Invalid user role", http.StatusBadRequest)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest)

	// Вакансии
	ErrJobNotFound   = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)
	ErrNotJobOwner   = New(CodeForbidden, "job", "Only the job owner may perform this action", http.StatusForbidden)
	ErrJobNotOpen    = New(CodeConflict, "job", "This job is no longer accepting applications", http.StatusConflict)
	ErrInvalidJobRef = New(CodeValidationFailed, "job", "Job owner must be an existing recruiter", http.StatusBadRequest)

	// Отклики
	ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)
	ErrAlreadyApplied      = New(CodeConflict, "application", "Already applied for this job", http.StatusConflict)
	ErrResumeRequired      = New(CodeValidationFailed, "application", "Resume file is required", http.StatusBadRequest)
	ErrPhoneRequired       = New(CodeValidationFailed, "application", "Phone number is required", http.StatusBadRequest)
	ErrResumeTooLarge      = New(CodeFileTooLarge, "application", "Resume file size must not exceed 5 MiB", http.StatusBadRequest)
	ErrResumeBadExtension  = New(CodeInvalidFileType, "application", "Only PDF, DOC and DOCX files are allowed", http.StatusBadRequest)
)
