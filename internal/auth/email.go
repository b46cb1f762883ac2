package auth

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/nesba5git/onpointflies/pkg/logger"
	"github.com/nesba5git/onpointflies/pkg/metrics"
)

// Auth0 ID tokens frequently omit the email claim (it depends on tenant
// rules and requested scopes). Resolution walks a fixed chain of
// extractors over the verified claims and, as a last resort, asks the
// provider's user-info endpoint using the caller's access token.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// emailExtractor inspects verified claims and returns an email or "".
// Extractors are total: they never fail, they just decline.
type emailExtractor func(Claims) string

// The closed, ordered fallback chain. Order matters: the standard claim
// wins, then namespaced custom claims, then heuristic username-shaped
// fields.
var claimEmailExtractors = []emailExtractor{
	emailFromStandardClaim,
	emailFromNamespacedClaim,
	emailFromHeuristicClaims,
}

func emailFromStandardClaim(c Claims) string {
	return c.str("email")
}

// emailFromNamespacedClaim picks the first claim whose key ends in
// "/email". Keys are walked in sorted order so the choice is stable.
func emailFromNamespacedClaim(c Claims) string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.HasSuffix(k, "/email") {
			if v := c.str(k); v != "" {
				return v
			}
		}
	}
	return ""
}

// emailFromHeuristicClaims accepts username-like claims only when the
// value actually looks like an email address.
func emailFromHeuristicClaims(c Claims) string {
	for _, k := range []string{"preferred_username", "name", "nickname"} {
		if v := c.str(k); v != "" && emailPattern.MatchString(v) {
			return v
		}
	}
	return ""
}

// EmailResolver recovers an email identifier for verified claims.
// Resolution never fails; the worst outcome is an empty result.
type EmailResolver struct {
	userInfo UserInfoLookup
}

// NewEmailResolver builds a resolver. userInfo may be nil, in which
// case the user-info fallback is skipped.
func NewEmailResolver(userInfo UserInfoLookup) *EmailResolver {
	return &EmailResolver{userInfo: userInfo}
}

// Resolve returns the caller's email, or "" when no source yields one.
// All claim extractors are pure; only the user-info fallback touches the
// network, and any failure there degrades to "no email".
func (r *EmailResolver) Resolve(ctx context.Context, claims Claims, accessToken string) string {
	for _, extract := range claimEmailExtractors {
		if v := extract(claims); v != "" {
			return v
		}
	}
	if accessToken == "" || r.userInfo == nil {
		return ""
	}

	info, err := r.userInfo.Lookup(ctx, accessToken)
	if err != nil {
		logger.Warnf("userinfo lookup failed: %v", err)
		metrics.UserInfoLookups.WithLabelValues("error").Inc()
		return ""
	}
	// The access token is caller-supplied and unverified. Only accept
	// the email when the endpoint confirms the same subject as the
	// verified bearer token; otherwise a substituted token could
	// impersonate another subject's email.
	if info.Subject != claims.Subject() {
		logger.Warnf("userinfo subject mismatch: token sub=%s userinfo sub=%s", claims.Subject(), info.Subject)
		metrics.UserInfoLookups.WithLabelValues("mismatch").Inc()
		return ""
	}
	if info.Email == "" {
		metrics.UserInfoLookups.WithLabelValues("no_email").Inc()
		return ""
	}
	metrics.UserInfoLookups.WithLabelValues("ok").Inc()
	return info.Email
}
