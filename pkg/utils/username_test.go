package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"skipper", "Anegada_42", "b0sun", "abc", "12345678901234567890"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{
		"ab",                    // too short
		"123456789012345678901", // too long
		"first mate",            // space
		"salty.dog",             // dot
		"_leading",              // must start with letter or number
		"ahoy!",                 // punctuation
		"",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), u)
	}
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "skipper", NormalizeUsername("  Skipper "))
	assert.Equal(t, "anegada_42", NormalizeUsername("Anegada_42"))
}
