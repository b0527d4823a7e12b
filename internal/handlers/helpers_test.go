package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", extractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", extractBearerToken("bearer abc123"))
	assert.Equal(t, "abc123", extractBearerToken("  Bearer abc123  "))

	assert.Equal(t, "", extractBearerToken(""))
	assert.Equal(t, "", extractBearerToken("Bearer"))
	assert.Equal(t, "", extractBearerToken("Basic dXNlcjpwYXNz"))
	assert.Equal(t, "", extractBearerToken("abc123"))
}
