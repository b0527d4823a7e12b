package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=2$onlysalt",
		"$bcrypt$whatever",
	} {
		ok, err := VerifyPassword("anything", hash)
		assert.False(t, ok, "hash %q", hash)
		assert.Error(t, err, "hash %q", hash)
	}
}
