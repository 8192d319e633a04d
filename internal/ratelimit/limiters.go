package ratelimit

import (
	"github.com/lshigami/mybeing/config"
)

const (
	NameAPI                = "api"
	NameNewsletter         = "newsletter"
	NameNewsletterPerEmail = "newsletter_email"
	NameQuizEmail          = "quiz_email"
	NameQuizEmailPerEmail  = "quiz_email_address"
	NameAdminLogin         = "admin_login"
)

// Limiters groups the limiter for each protected concern. They share one store; names keep
// their counters apart.
type Limiters struct {
	API                *Limiter
	Newsletter         *Limiter
	NewsletterPerEmail *Limiter
	QuizEmail          *Limiter
	QuizEmailPerEmail  *Limiter
	AdminLogin         *Limiter
}

func NewLimiters(cfg config.RateLimit, store Store, opts ...Option) *Limiters {
	mk := func(name string, max int) *Limiter {
		return New(Config{Name: name, Max: max, Window: cfg.Window}, store, opts...)
	}
	return &Limiters{
		API:                mk(NameAPI, cfg.APIMax),
		Newsletter:         mk(NameNewsletter, cfg.NewsletterMax),
		NewsletterPerEmail: mk(NameNewsletterPerEmail, cfg.PerEmailMax),
		QuizEmail:          mk(NameQuizEmail, cfg.QuizEmailMax),
		QuizEmailPerEmail:  mk(NameQuizEmailPerEmail, cfg.PerEmailMax),
		AdminLogin:         mk(NameAdminLogin, cfg.AdminLoginMax),
	}
}
