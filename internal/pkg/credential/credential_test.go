package credential

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAccountCode(t *testing.T) {
	pattern := regexp.MustCompile(`^EMP-[A-Z0-9]{6}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := NewAccountCode(PrefixEmployee)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}

func TestNewAccessCode(t *testing.T) {
	code, err := NewAccessCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}$`, code)
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("a1b2c3d4")
	require.NoError(t, err)
	assert.NotEqual(t, "a1b2c3d4", hash)
	assert.True(t, h.Matches(hash, "a1b2c3d4"))
	assert.False(t, h.Matches(hash, "wrong"))
}

func TestNewHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
}
