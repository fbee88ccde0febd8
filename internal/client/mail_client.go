package client

import (
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// MailClient sends HTML mail through an SMTP relay.
type MailClient struct {
	address string
	auth    smtp.Auth
	from    string
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailClient(cfg MailConfig) (*MailClient, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and sender are required")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &MailClient{
		address: net.JoinHostPort(cfg.Host, cfg.Port),
		auth:    auth,
		from:    cfg.From,
		send:    smtp.SendMail,
	}, nil
}

// SendHTML delivers an HTML message to a single recipient.
func (c *MailClient) SendHTML(to string, subject string, content string) error {
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	message := buildMessage(c.from, to, subject, content, time.Now())
	if err := c.send(c.address, c.auth, c.from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, content string, date time.Time) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	builder.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(content)
	return []byte(builder.String())
}
