package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const unknownClient = "unknown"

// ClientIP returns the first X-Forwarded-For value, or "unknown" when the header is absent.
func ClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return unknownClient
	}
	first, _, _ := strings.Cut(xff, ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	return unknownClient
}

// ClientKey identifies the caller by IP, optionally narrowed by a short User-Agent digest.
func ClientKey(r *http.Request, withUserAgent bool) string {
	ip := ClientIP(r)
	if !withUserAgent {
		return "ip:" + ip
	}
	sum := sha256.Sum256([]byte(r.UserAgent()))
	return "ip:" + ip + ":ua:" + hex.EncodeToString(sum[:])[:12]
}

// EmailKey keys a limiter by mailbox instead of by client.
func EmailKey(email string) string {
	return "email:" + strings.ToLower(strings.TrimSpace(email))
}
