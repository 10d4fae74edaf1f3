package services

import (
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendLoginOTP(email, name, code string, ttl time.Duration) error
	SendPasswordResetOTP(email, name, code string, ttl time.Duration) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
	log    *zap.SugaredLogger
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool, log *zap.SugaredLogger) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		dryRun: dryRun,
		log:    log,
	}
}

func loginOTPBody(name, code string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>Your login verification code is: <strong>%s</strong></p>
		<p>The code expires in %d minutes. If you did not try to sign in, you can ignore this email.</p>
	`, html.EscapeString(name), code, int(ttl.Minutes()))
}

func (s *emailService) SendLoginOTP(email, name, code string, ttl time.Duration) error {
	if err := s.send(email, "Your login code", loginOTPBody(name, code, ttl), code); err != nil {
		return fmt.Errorf("failed to send login otp email: %w", err)
	}
	return nil
}

func resetOTPBody(name, code string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Hello %s, we received a request to reset the password for your account.</p>
		<p>Use the following code to reset your password: <strong>%s</strong></p>
		<p>The code expires in %d minutes. If you did not request this change, you can ignore this email.</p>
	`, html.EscapeString(name), code, int(ttl.Minutes()))
}

func (s *emailService) SendPasswordResetOTP(email, name, code string, ttl time.Duration) error {
	if err := s.send(email, "Password reset code", resetOTPBody(name, code, ttl), code); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *emailService) send(to, subject, body, code string) error {
	if s.dryRun {
		s.log.Infow("[email][dry-run] message not sent", "to", to, "subject", subject, "code", code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
