package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Sender delivers a contact message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (fn SenderFunc) Send(ctx context.Context, msg Message) error {
	return fn(ctx, msg)
}

// SimulatedSender stands in for a mail backend: it waits for Latency and
// reports success.
type SimulatedSender struct {
	Latency time.Duration
}

func (s SimulatedSender) Send(ctx context.Context, _ Message) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SMTPConfig holds mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// Configured reports whether credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Password != ""
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender mails each message to the site owner with Reply-To set to the
// visitor.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, composeMail(s.cfg, msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func composeMail(cfg SMTPConfig, msg Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Subject, msg.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: Portfolio Contact: " + headerValue(msg.Subject) + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + headerValue(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerValue drops line breaks so visitor input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
