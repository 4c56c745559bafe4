package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_LengthAndCharset(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestGenerateCode_BadLengthFallsBack(t *testing.T) {
	code, err := GenerateCode(0)
	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
}

func TestGenerateCode_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 draws from a million values colliding down to one is not credible.
	assert.Greater(t, len(seen), 1)
}
