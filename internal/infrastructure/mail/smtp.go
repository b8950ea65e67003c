// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Config captures the SMTP endpoint and sender identity.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// Timeout bounds the whole dial-auth-send exchange. Zero means 15s.
	Timeout time.Duration
}

// SMTPMailer implements ports.Mailer over a plain SMTP connection upgraded
// with STARTTLS. A connection is established per send; reset emails are far
// too rare to justify pooling.
type SMTPMailer struct {
	cfg      Config
	resetTTL time.Duration
}

func NewSMTPMailer(cfg Config, resetTTL time.Duration) *SMTPMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPMailer{cfg: cfg, resetTTL: resetTTL}
}

// SendPasswordReset emails the reset link to the account owner. The URL
// carries the plaintext token; this message is the only place it ever
// appears outside the requester's response path.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	subject := "[ProjectManager] Password reset request"
	body := resetBody(resetURL, m.resetTTL)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := message(m.cfg.From, to, subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func message(from, to, subject, htmlBody string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}

func resetBody(resetURL string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Project Manager</h2>
  <p style="color: #555;">We received a request to reset the password for your account.
  Click the button below to choose a new one:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%[1]s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold;">Reset password</a>
  </div>
  <p style="color: #555;">If the button does not work, copy this link into your browser:</p>
  <p style="background-color: #f3f4f6; padding: 12px; word-break: break-all; font-family: monospace;">%[1]s</p>
  <p style="color: #dc2626; font-size: 14px;"><strong>Note:</strong> this link is only valid for <strong>%[2]d minutes</strong>.</p>
  <hr style="border: none; border-top: 1px solid #eee;">
  <p style="font-size: 13px; color: #888;">If you did not request a password change, you can safely ignore this email.</p>
</div>`, resetURL, minutes)
}
