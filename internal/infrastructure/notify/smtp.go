package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPChannel sends email through a plain SMTP relay with optional PLAIN auth.
type SMTPChannel struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewSMTPChannel(host, port, from, username, password string) *SMTPChannel {
	return &SMTPChannel{host: host, port: port, from: from, username: username, password: password}
}

func (c *SMTPChannel) Name() string { return "smtp" }

func (c *SMTPChannel) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", c.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", c.host, c.port)

	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}

	// net/smtp has no context support; run the send in a goroutine so the
	// chain's deadline still bounds how long the caller waits.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, c.from, []string{to}, []byte(msg))
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
