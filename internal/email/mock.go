package email

import (
	"sync"

	"jobhive_backend/internal/models"
)

// MockProvider записывает отправленные письма для тестов и dev окружения
type MockProvider struct {
	mu   sync.Mutex
	Sent []SentEmail
}

// SentEmail описывает одно записанное письмо
type SentEmail struct {
	To   string
	Kind string
}

// NewMockProvider создает mock провайдер
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) record(to, kind string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, SentEmail{To: to, Kind: kind})
}

func (p *MockProvider) SendWelcome(user *models.User) error {
	p.record(user.Email, "welcome")
	return nil
}

func (p *MockProvider) SendApplicationReceived(recruiter *models.User, job *models.Job, applicant *models.User) error {
	p.record(recruiter.Email, "application_received")
	return nil
}

func (p *MockProvider) SendApplicationStatus(applicant *models.User, job *models.Job, status models.ApplicationStatus) error {
	p.record(applicant.Email, "application_status")
	return nil
}

func (p *MockProvider) Close() error {
	return nil
}

// SentCount возвращает число записанных писем
func (p *MockProvider) SentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}
