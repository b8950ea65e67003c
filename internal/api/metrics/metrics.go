// Package metrics defines and registers all custom Prometheus metrics for the
// auth service. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginsTotal counts password-login attempts.
// Label:
//   - result: "success" or "failure" (wrong password and unknown email are
//     one bucket on purpose; the split would leak the same signal the login
//     error hides)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - method: "password" or "google"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by registration method.",
	},
	[]string{"method"},
)

// GoogleLoginsTotal counts Google ID-token logins that resolved to a user.
var GoogleLoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "google_logins_total",
		Help:      "Total number of successful Google logins.",
	},
)

// ResetTokensIssuedTotal counts reset tokens generated and persisted.
var ResetTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_issued_total",
		Help:      "Total number of password reset tokens issued.",
	},
)

// ResetTokensConsumedTotal counts successful password resets.
var ResetTokensConsumedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_consumed_total",
		Help:      "Total number of password reset tokens redeemed.",
	},
)

// ResetEmailErrorsTotal counts reset emails that failed to send. The token
// stays persisted on failure, so this also measures orphaned-but-valid tokens.
var ResetEmailErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_email_errors_total",
		Help:      "Total number of reset emails that failed delivery.",
	},
)

// TokenVerifyDuration measures bearer-token verification plus the user
// re-fetch in the route-protection middleware.
// Label:
//   - result: "ok", "invalid_token", or "user_missing"
var TokenVerifyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "token_verify_duration_seconds",
		Help:      "Duration of bearer token verification in the auth middleware.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
