// Package email provides verification email delivery.
// It supports both development mode (log-only) and production mode (SMTP).
package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
	"strconv"
)

// Sender defines the interface for sending verification emails
type Sender interface {
	SendVerificationCode(email, code string) error
}

// Config holds email configuration
type Config struct {
	Mode     string // "log" or "smtp"
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// NewConfig creates a new email configuration from environment variables
func NewConfig() *Config {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	return &Config{
		Mode:     getEnvOrDefault("EMAIL_MODE", "log"),
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnvOrDefault("SMTP_FROM", "noreply@speakerbook.local"),
		FromName: getEnvOrDefault("SMTP_FROM_NAME", "Speakerbook"),
	}
}

// NewSender creates a new email sender based on configuration
func NewSender(cfg *Config) Sender {
	if cfg.Mode == "smtp" {
		return &smtpSender{config: cfg}
	}
	return &logSender{}
}

// logSender logs emails instead of sending them (development mode)
type logSender struct{}

func (s *logSender) SendVerificationCode(email, code string) error {
	slog.Info("verification code issued", "recipient", email, "code", code)
	return nil
}

// smtpSender sends emails via SMTP (production mode)
type smtpSender struct {
	config *Config
}

func (s *smtpSender) SendVerificationCode(email, code string) error {
	subject := "Verify your email"
	body := s.buildEmailBody(code)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From)
	message += fmt.Sprintf("To: %s\r\n", email)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/html; charset=UTF-8\r\n"
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := smtp.SendMail(addr, auth, s.config.From, []string{email}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("verification code sent", "recipient", email)
	return nil
}

func (s *smtpSender) buildEmailBody(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <p>Hello,</p>
    <p>Your verification code is:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">%s</p>
    <p>This code expires in <strong>10 minutes</strong>.</p>
    <p style="font-size: 12px; color: #999;">
        If you didn't sign up for Speakerbook, you can safely ignore this email.
    </p>
</body>
</html>
`, code)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
