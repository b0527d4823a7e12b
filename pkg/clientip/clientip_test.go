package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", RealClientIP(r))
}

func TestRealClientIPNoPort(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", RealClientIP(r))
}

func TestRealClientIPIgnoresForwardedHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	r.Header.Set("X-Forwarded-For", "198.51.100.99")
	assert.Equal(t, "203.0.113.7", RealClientIP(r))
}
