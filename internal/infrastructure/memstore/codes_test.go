package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plugin-accounts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(email, code string) domain.VerificationEntry {
	return domain.VerificationEntry{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute).Unix(),
	}
}

func TestCodeStore_PutGet(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, entry("a@x.com", "123456")))
	got, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestCodeStore_GetMissing(t *testing.T) {
	s := NewCodeStore()
	_, err := s.Get(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCodeStore_PutOverwrites(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, entry("a@x.com", "111111")))
	require.NoError(t, s.Put(ctx, entry("a@x.com", "222222")))

	got, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
}

func TestCodeStore_Delete(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, entry("a@x.com", "123456")))
	require.NoError(t, s.Delete(ctx, "a@x.com"))

	_, err := s.Get(ctx, "a@x.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete(ctx, "a@x.com"))
}

func TestCodeStore_EmailsAreCaseSensitive(t *testing.T) {
	s := NewCodeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, entry("A@x.com", "123456")))
	_, err := s.Get(ctx, "a@x.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
