// Package auth checks the site owner's credentials and issues the admin session token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName     = "admin_token"
	RoleSuperAdmin = "super_admin"
	issuer         = "mybeing"
)

// Permissions granted to the owner session. There is a single role.
var Permissions = []string{"quizzes:write", "articles:write", "analytics:read", "subscribers:read"}

var (
	ErrAdminNotConfigured = apperror.New(apperror.CodeAdminNotConfigured, "admin access is not configured")
	ErrInvalidCredentials = apperror.New(apperror.CodeInvalidCredentials, "invalid credentials")
)

type Session struct {
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	cfg config.Admin
	now func() time.Time
}

func New(cfg config.Admin) *Authenticator {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &Authenticator{cfg: cfg, now: time.Now}
}

// NewFromConfig is the fx constructor.
func NewFromConfig(cfg *config.Config) *Authenticator {
	return New(cfg.Admin)
}

// Configured reports whether owner email, password and signing secret are all set.
func (a *Authenticator) Configured() bool {
	return a.cfg.OwnerEmail != "" && a.cfg.Password != "" && a.cfg.JWTSecret != ""
}

func (a *Authenticator) TokenTTL() time.Duration { return a.cfg.TokenTTL }

// Authenticate checks the submitted credentials against the configured owner and returns
// a signed session token on success. Every comparison runs regardless of earlier results.
func (a *Authenticator) Authenticate(email, password, secretKey string) (*Session, string, error) {
	if !a.Configured() {
		return nil, "", ErrAdminNotConfigured
	}

	ok := equalDigest(normalizeEmail(email), normalizeEmail(a.cfg.OwnerEmail))
	ok = a.checkPassword(password) && ok
	if a.cfg.SecretKey != "" {
		ok = equalDigest(secretKey, a.cfg.SecretKey) && ok
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	session := a.newSession()
	token, err := a.sign(session)
	if err != nil {
		return nil, "", fmt.Errorf("sign admin token: %w", err)
	}
	return session, token, nil
}

// Verify parses a session token and checks it still belongs to the configured owner.
func (a *Authenticator) Verify(token string) (*Session, error) {
	if !a.Configured() {
		return nil, ErrAdminNotConfigured
	}
	if token == "" {
		return nil, apperror.Unauthorized("missing admin token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(a.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized("admin session expired")
		}
		return nil, apperror.Unauthorized("invalid admin token")
	}
	if claims.Role != RoleSuperAdmin || !equalDigest(claims.Subject, normalizeEmail(a.cfg.OwnerEmail)) {
		return nil, apperror.Unauthorized("invalid admin token")
	}

	return &Session{
		Email:       claims.Subject,
		Role:        claims.Role,
		Permissions: append([]string(nil), Permissions...),
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Cookie builds the session cookie for token. An empty token with a past expiry clears it.
func (a *Authenticator) Cookie(token string, expires time.Time) *http.Cookie {
	maxAge := int(expires.Sub(a.now()).Seconds())
	if token == "" || maxAge <= 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie expires the session cookie.
func (a *Authenticator) ClearCookie() *http.Cookie {
	return a.Cookie("", time.Unix(0, 0))
}

// TokenFromRequest reads the session cookie, falling back to an Authorization bearer token.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func (a *Authenticator) newSession() *Session {
	return &Session{
		Email:       normalizeEmail(a.cfg.OwnerEmail),
		Role:        RoleSuperAdmin,
		Permissions: append([]string(nil), Permissions...),
		ExpiresAt:   a.now().Add(a.cfg.TokenTTL).Truncate(time.Second),
	}
}

func (a *Authenticator) sign(s *Session) (string, error) {
	now := a.now()
	claims := Claims{
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Email,
			Issuer:    issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
}

// checkPassword accepts either a bcrypt hash or a plain secret in ADMIN_PASSWORD.
func (a *Authenticator) checkPassword(password string) bool {
	if strings.HasPrefix(a.cfg.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.cfg.Password), []byte(password)) == nil
	}
	return equalDigest(password, a.cfg.Password)
}

// equalDigest compares SHA-256 digests so the inputs' lengths do not affect timing.
func equalDigest(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
