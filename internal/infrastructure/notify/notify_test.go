package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records calls and returns a scripted error.
type fakeChannel struct {
	name  string
	err   error
	calls int
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(_ context.Context, _, _, _ string) error {
	f.calls++
	return f.err
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &fakeChannel{name: "first"}
	second := &fakeChannel{name: "second"}
	chain := NewChain(100, 10, first, second)

	err := chain.Deliver(context.Background(), "a@x.com", "subj", "body")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later channels must not be tried after a success")
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeChannel{name: "first", err: errors.New("provider down")}
	second := &fakeChannel{name: "second"}
	chain := NewChain(100, 10, first, second)

	err := chain.Deliver(context.Background(), "a@x.com", "subj", "body")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChain_ExhaustionReturnsAllErrors(t *testing.T) {
	first := &fakeChannel{name: "first", err: errors.New("down")}
	second := &fakeChannel{name: "second", err: errors.New("also down")}
	chain := NewChain(100, 10, first, second)

	err := chain.Deliver(context.Background(), "a@x.com", "subj", "body")
	require.Error(t, err)
	assert.ErrorContains(t, err, "first")
	assert.ErrorContains(t, err, "second")
}

func TestChain_NoChannels(t *testing.T) {
	chain := NewChain(100, 10)
	err := chain.Deliver(context.Background(), "a@x.com", "subj", "body")
	assert.Error(t, err)
}

func TestChain_CancelledContext(t *testing.T) {
	ch := &fakeChannel{name: "ch"}
	// Zero-burst limiter can never admit a send, so Wait blocks until the
	// context is cancelled.
	chain := NewChain(0, 0, ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := chain.Deliver(ctx, "a@x.com", "subj", "body")
	require.Error(t, err)
	assert.Equal(t, 0, ch.calls)
}

func TestConsoleChannel_AlwaysSucceeds(t *testing.T) {
	c := NewConsoleChannel()
	assert.NoError(t, c.Send(context.Background(), "a@x.com", "subj", "code 123456"))
}
