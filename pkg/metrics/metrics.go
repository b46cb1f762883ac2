package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "auth_requests_total", Help: "Bearer token verifications by outcome (ok or failure kind)."},
		[]string{"outcome"},
	)
	RoleResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "role_resolutions_total", Help: "Role resolutions by resolved role and granting rule."},
		[]string{"role", "reason"},
	)
	UserInfoLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "userinfo_lookups_total", Help: "User-info email fallback lookups by outcome."},
		[]string{"outcome"},
	)
	StorageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "user_store_failures_total", Help: "User record store failures by operation."},
		[]string{"op"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "onpointflies", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthRequests)
	reg.MustRegister(RoleResolutions)
	reg.MustRegister(UserInfoLookups)
	reg.MustRegister(StorageFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
