package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"safai/platform"

	"github.com/jordan-wright/email"
	"github.com/yuin/goldmark"
)

// MailService sends the account-verification mail. The body is authored in
// markdown and rendered to HTML before sending.
type MailService struct {
	config platform.Config
}

func NewMailService(config platform.Config) *MailService {
	return &MailService{config: config}
}

const verificationMailTemplate = `## Welcome to SafAI! 🤖

Thank you for signing up. Please verify your email address to get started.

[Verify Email](%s)

Or copy this link: %s

This link expires in 24 hours.
`

// SendVerification delivers the verification link over SMTP with STARTTLS.
// Callers treat a failure as a warning; it never blocks signup.
func (m *MailService) SendVerification(to string, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.config.BaseURL, token)

	var body bytes.Buffer
	source := fmt.Sprintf(verificationMailTemplate, verifyURL, verifyURL)
	if err := goldmark.Convert([]byte(source), &body); err != nil {
		return fmt.Errorf("failed to render mail body: %w", err)
	}

	e := email.NewEmail()
	e.From = m.config.SMTPEmail
	e.To = []string{to}
	e.Subject = "Verify Your SafAI Account"
	e.HTML = body.Bytes()

	addr := m.config.SMTPServer + ":" + m.config.SMTPPort
	auth := smtp.PlainAuth("", m.config.SMTPEmail, m.config.SMTPPassword, m.config.SMTPServer)
	if err := e.SendWithStartTLS(addr, auth, &tls.Config{ServerName: m.config.SMTPServer}); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}
