package email

import (
	"context"
	"fmt"
	"net/smtp"

	"portfolio-backend/internal/config"
	"portfolio-backend/pkg/logger"
)

// ContactEmailData carries one contact form submission.
type ContactEmailData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type EmailService interface {
	SendContactEmail(ctx context.Context, data ContactEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpUser string
	smtpPass string
	smtpHost string
	smtpFrom string
	smtpTo   string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		smtpAddr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		smtpUser: cfg.User,
		smtpPass: cfg.Pass,
		smtpHost: cfg.Host,
		smtpFrom: cfg.From,
		smtpTo:   cfg.To,
	}
}

func (s *smtpEmailService) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	subject := data.Subject
	if subject == "" {
		subject = "New Contact Form Submission"
	}
	body := fmt.Sprintf(`Name: %s
Email: %s

Message:
%s`, data.Name, data.Email, data.Message)

	// Reply-To points at the submitter so replies from the inbox go
	// straight back to them.
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, s.smtpTo, data.Email, subject, body))

	var auth smtp.Auth
	if s.smtpUser != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	err := smtp.SendMail(s.smtpAddr, auth, s.smtpFrom, []string{s.smtpTo}, msg)
	if err != nil {
		logger.Error("Failed to send contact email", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Contact email sent", map[string]interface{}{
		"from_name":  data.Name,
		"from_email": data.Email,
	})
	return nil
}
