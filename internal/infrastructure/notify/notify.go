package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// Channel is one way of getting a message to a recipient. Implementations
// must respect ctx so a stalled provider cannot hold a request open.
type Channel interface {
	Name() string
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier delivers a message through an ordered list of channels.
type Notifier interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

// Chain tries each channel in priority order and stops at the first success.
// Outbound sends are paced with a shared token bucket so a burst of signups
// cannot trash the sender's reputation with the upstream providers.
type Chain struct {
	channels []Channel
	limiter  *rate.Limiter
}

// NewChain builds a chain over the given channels. perSecond caps sustained
// outbound deliveries; burst allows short spikes.
func NewChain(perSecond float64, burst int, channels ...Channel) *Chain {
	return &Chain{
		channels: channels,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Deliver sends through the first channel that succeeds. Every channel failing
// returns an error carrying each channel's failure; callers decide whether that
// is fatal (for verification codes it is not — the code is already stored).
func (c *Chain) Deliver(ctx context.Context, to, subject, body string) error {
	if len(c.channels) == 0 {
		return errors.New("no delivery channels configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("delivery pacing: %w", err)
	}
	var errs []error
	for _, ch := range c.channels {
		err := ch.Send(ctx, to, subject, body)
		if err == nil {
			slog.Info("message delivered", "channel", ch.Name(), "to", to)
			return nil
		}
		slog.Warn("delivery channel failed, trying next", "channel", ch.Name(), "to", to, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
	}
	return errors.Join(errs...)
}
