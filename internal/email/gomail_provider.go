package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"jobhive_backend/internal/config"
	"jobhive_backend/internal/models"
)

// GomailProvider отправляет письма через SMTP используя gomail
type GomailProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewGomailProvider создает SMTP провайдер из конфигурации
func NewGomailProvider(cfg config.EmailConfig) (*GomailProvider, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &GomailProvider{
		dialer:    dialer,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

func (p *GomailProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// SendWelcome отправляет приветственное письмо после регистрации
func (p *GomailProvider) SendWelcome(user *models.User) error {
	subject := "Welcome to JobHive"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. You can now browse open positions and apply.</p>
	`, user.Name)

	return p.send(user.Email, subject, body)
}

// SendApplicationReceived уведомляет рекрутера о новом отклике
func (p *GomailProvider) SendApplicationReceived(recruiter *models.User, job *models.Job, applicant *models.User) error {
	subject := fmt.Sprintf("New application for %s", job.Title)
	body := fmt.Sprintf(`
		<h2>New application</h2>
		<p>%s (%s) applied for your job posting <b>%s</b>.</p>
		<p>Open your dashboard to review the application.</p>
	`, applicant.Name, applicant.Email, job.Title)

	return p.send(recruiter.Email, subject, body)
}

// SendApplicationStatus уведомляет соискателя об изменении статуса отклика
func (p *GomailProvider) SendApplicationStatus(applicant *models.User, job *models.Job, status models.ApplicationStatus) error {
	subject := fmt.Sprintf("Application update: %s", job.Title)
	body := fmt.Sprintf(`
		<h2>Application status changed</h2>
		<p>Your application for <b>%s</b> is now <b>%s</b>.</p>
	`, job.Title, status)

	return p.send(applicant.Email, subject, body)
}

// Close закрывает соединение с провайдером
func (p *GomailProvider) Close() error {
	return nil
}
