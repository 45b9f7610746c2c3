package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/medfinder/medfinder/internal/config"
	"github.com/medfinder/medfinder/internal/logging"
)

type EmailServiceInterface interface {
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
}

// EmailService sends transactional mail through one of three providers:
// "resend" for production, "smtp" for local Mailpit, "console" to just log
// the message.
type EmailService struct {
	cfg          *config.EmailConfig
	resendClient *resend.Client
}

var smtpSendMail = smtp.SendMail

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	if cfg.Provider == "resend" {
		s.resendClient = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

func (s *EmailService) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	subject := "Password Reset Request"
	text := fmt.Sprintf(`To reset your password, visit the following link:
%s

If you did not make this request then simply ignore this email and no changes will be made.
`, resetURL)
	html := fmt.Sprintf(`<p>To reset your password, visit the following link:</p>
<p><a href="%s">%s</a></p>
<p>If you did not make this request then simply ignore this email and no changes will be made.</p>
`, resetURL, resetURL)

	return s.send(ctx, to, subject, html, text)
}

func (s *EmailService) send(ctx context.Context, to, subject, html, text string) error {
	switch s.cfg.Provider {
	case "resend":
		return s.sendResend(ctx, to, subject, html, text)
	case "smtp":
		return s.sendSMTP(to, subject, text)
	default:
		logging.Info("Email (console provider)", map[string]interface{}{
			"to":      to,
			"subject": subject,
			"body":    text,
		})
		return nil
	}
}

func (s *EmailService) sendResend(ctx context.Context, to, subject, html, text string) error {
	_, err := s.resendClient.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress),
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("sending email via resend: %w", err)
	}
	return nil
}

func (s *EmailService) sendSMTP(to, subject, text string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.cfg.FromName, s.cfg.FromAddress),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		text,
	}, "\r\n")

	if err := smtpSendMail(addr, nil, s.cfg.FromAddress, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending email via smtp: %w", err)
	}
	return nil
}
