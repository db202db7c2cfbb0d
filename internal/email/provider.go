package email

import "jobhive_backend/internal/models"

// Provider определяет интерфейс для отправки email уведомлений
type Provider interface {
	// SendWelcome отправляет приветственное письмо после регистрации
	SendWelcome(user *models.User) error

	// SendApplicationReceived уведомляет рекрутера о новом отклике
	SendApplicationReceived(recruiter *models.User, job *models.Job, applicant *models.User) error

	// SendApplicationStatus уведомляет соискателя об изменении статуса отклика
	SendApplicationStatus(applicant *models.User, job *models.Job, status models.ApplicationStatus) error

	// Close закрывает соединение с провайдером
	Close() error
}
