package email

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"

	sharedConfig "coursekit/internal/shared/config"
)

// Service sends the transactional mail the platform needs. The interface is
// narrow so usecases can swap in a recording fake.
type Service interface {
	SendMagicLinkEmail(to, code, redirect string) error
	SendEnrollmentEmail(to, courseTitle, courseSlug string) error
}

type SMTPEmailService struct {
	cfg     sharedConfig.EmailConfig
	baseURL string
	dialer  *gomail.Dialer
}

func NewSMTPEmailService(cfg sharedConfig.EmailConfig, baseURL string) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		cfg:     cfg,
		baseURL: baseURL,
		dialer:  dialer,
	}
}

// SendMagicLinkEmail mails a one-time login link. The redirect, when set, is
// carried through so the user lands back where they started.
func (s *SMTPEmailService) SendMagicLinkEmail(to, code, redirect string) error {
	loginURL := fmt.Sprintf("%s/auth/verify?token=%s", s.baseURL, url.QueryEscape(code))
	if redirect != "" {
		loginURL += "&redirect=" + url.QueryEscape(redirect)
	}

	subject := "Your login link"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Sign in to %s</h2>
			<p>Click the link below to sign in:</p>
			<p><a href="%s">Sign In</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link can be used once and expires shortly.</p>
			<p>If you didn't request this, you can safely ignore this email.</p>
		</body>
		</html>
	`, s.cfg.FromName, loginURL, loginURL)

	plainBody := fmt.Sprintf(`
Sign in to %s

Visit the following URL to sign in:
%s

This link can be used once and expires shortly.

If you didn't request this, you can safely ignore this email.
	`, s.cfg.FromName, loginURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendEnrollmentEmail notifies a student that a course was unlocked for them.
func (s *SMTPEmailService) SendEnrollmentEmail(to, courseTitle, courseSlug string) error {
	courseURL := fmt.Sprintf("%s/learn/%s", s.baseURL, courseSlug)

	subject := fmt.Sprintf("You now have access to %s", courseTitle)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>You're in!</h2>
			<p>You now have access to <strong>%s</strong>.</p>
			<p><a href="%s">Start learning</a></p>
		</body>
		</html>
	`, courseTitle, courseURL)

	plainBody := fmt.Sprintf(`
You're in!

You now have access to %s.

Start learning: %s
	`, courseTitle, courseURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
