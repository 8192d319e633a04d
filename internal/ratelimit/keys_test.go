package ratelimit

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	assert.Equal(t, "unknown", ClientIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(r))

	r.Header.Set("X-Forwarded-For", " ,10.0.0.1")
	assert.Equal(t, "unknown", ClientIP(r))
}

func TestClientKeyWithUserAgent(t *testing.T) {
	a := httptest.NewRequest("POST", "/", nil)
	a.Header.Set("X-Forwarded-For", "203.0.113.7")
	a.Header.Set("User-Agent", "Mozilla/5.0")
	b := httptest.NewRequest("POST", "/", nil)
	b.Header.Set("X-Forwarded-For", "203.0.113.7")
	b.Header.Set("User-Agent", "curl/8.0")

	assert.Equal(t, "ip:203.0.113.7", ClientKey(a, false))
	assert.NotEqual(t, ClientKey(a, true), ClientKey(b, true))
	assert.True(t, strings.HasPrefix(ClientKey(a, true), "ip:203.0.113.7:ua:"))
	assert.Len(t, strings.TrimPrefix(ClientKey(a, true), "ip:203.0.113.7:ua:"), 12)
}

func TestEmailKeyNormalises(t *testing.T) {
	assert.Equal(t, EmailKey("Reader@Example.com "), EmailKey("reader@example.com"))
}
