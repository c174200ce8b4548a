package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/pkg/log"
)

const tracerName = "nlu-router/internal/middleware"

// Middleware holds the gin middlewares shared by the delivery handlers.
type Middleware struct {
	l           log.Logger
	secretToken string
	allowedIPs  []string
	adminToken  string
	limiter     *rateLimiter
	tracer      trace.Tracer
}

// Config configures New.
type Config struct {
	// SecretToken is the expected Telegram webhook secret; empty disables the check.
	SecretToken string
	// AllowedIPs restricts webhook callers by IP or CIDR; empty allows all.
	AllowedIPs      []string
	RateLimitPerMin int
	// AdminToken is the bearer token of the admin API; empty rejects every call.
	AdminToken string
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:           l,
		secretToken: cfg.SecretToken,
		allowedIPs:  cfg.AllowedIPs,
		adminToken:  cfg.AdminToken,
		limiter:     newRateLimiter(cfg.RateLimitPerMin),
		tracer:      otel.Tracer(tracerName),
	}
}
