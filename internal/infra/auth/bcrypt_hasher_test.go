package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("correct horse battery stample", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	second, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	// Per-call salting: equal inputs, distinct hashes, both verifiable.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("hunter2", first))
	assert.True(t, hasher.Check("hunter2", second))
}

func TestBcryptHasher_MalformedHashIsFalse(t *testing.T) {
	hasher := NewBcryptHasher()

	assert.False(t, hasher.Check("whatever", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("whatever", ""))
}

func TestNewBcryptHasherWithCost_OutOfRangeFallsBack(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MaxCost + 1)

	// Must still produce verifiable hashes with the fallback cost.
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
