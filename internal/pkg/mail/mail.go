package mail

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender sends HTML emails to a list of recipients
type Sender interface {
	Send(subject string, recipients []string, body string) error
}

// SMTPConfig holds the SMTP server settings
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender implements Sender over a plain-auth SMTP server
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP mail sender
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port == "" || cfg.From == "" {
		return nil, errors.New("invalid SMTP configuration")
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send sends an HTML email
func (s *SMTPSender) Send(subject string, recipients []string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From,
		strings.Join(recipients, ", "),
		subject,
		body,
	))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, msg); err != nil {
		log.Printf("❌ Failed to send email to %v: %v", recipients, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 Email sent to %v: %s", recipients, subject)
	return nil
}
