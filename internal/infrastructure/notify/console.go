package notify

import (
	"context"
	"log/slog"
)

// ConsoleChannel logs the message instead of sending it. Placed last in the
// chain it guarantees a verification code is never silently lost: when every
// real provider is down, an operator can still read the code off the logs.
type ConsoleChannel struct{}

func NewConsoleChannel() *ConsoleChannel { return &ConsoleChannel{} }

func (c *ConsoleChannel) Name() string { return "console" }

func (c *ConsoleChannel) Send(_ context.Context, to, subject, body string) error {
	slog.Info("console delivery fallback", "to", to, "subject", subject, "body", body)
	return nil
}
