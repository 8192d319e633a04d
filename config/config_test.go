package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("OWNER_EMAIL", "owner@example.com")
	t.Setenv("RATE_LIMIT_API_MAX", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", cfg.Admin.OwnerEmail)
	assert.Equal(t, 24*time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 7, cfg.RateLimit.APIMax)
	assert.Equal(t, 5, cfg.RateLimit.NewsletterMax)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestSplitListSkipsBlanks(t *testing.T) {
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"*"}, splitList("*"))
}
