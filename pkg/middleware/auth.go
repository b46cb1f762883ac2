package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/auth"
	"github.com/nesba5git/onpointflies/pkg/metrics"
)

// Context keys set by the auth middleware.
const (
	ContextPrincipal = "principal"
	ContextClaims    = "claims"
)

// Authenticator runs the full identity resolution chain for a request:
// credential extraction, signature verification, email resolution and
// role resolution. The resolved Principal lands in the gin context.
type Authenticator struct {
	verifier auth.TokenVerifier
	emails   *auth.EmailResolver
	roles    *auth.RoleResolver
}

// NewAuthenticator wires the chain. verifier may be nil when the Auth0
// tenant is not configured; every protected request then fails with
// server_misconfigured instead of crashing at startup.
func NewAuthenticator(verifier auth.TokenVerifier, emails *auth.EmailResolver, roles *auth.RoleResolver) *Authenticator {
	return &Authenticator{verifier: verifier, emails: emails, roles: roles}
}

func abortUnauthorized(c *gin.Context, kind auth.FailureKind, msg string) {
	metrics.AuthRequests.WithLabelValues(string(kind)).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "errorCode": string(kind)})
}

// Middleware returns a Gin middleware that authenticates Bearer tokens
// and resolves the caller's Principal.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := auth.ExtractCredentials(c.Request.Header)
		if creds.Bearer == "" {
			abortUnauthorized(c, auth.FailureNoToken, "missing bearer token")
			return
		}
		if a.verifier == nil {
			abortUnauthorized(c, auth.FailureServerMisconfigured, "authentication is not configured")
			return
		}

		claims, err := a.verifier.Verify(c.Request.Context(), creds.Bearer)
		if err != nil {
			abortUnauthorized(c, auth.KindOf(err), "invalid token")
			return
		}
		metrics.AuthRequests.WithLabelValues("ok").Inc()

		p := auth.NewPrincipal(claims)
		p.Email = a.emails.Resolve(c.Request.Context(), claims, creds.AccessToken)
		a.roles.Resolve(c.Request.Context(), p)

		c.Set(ContextClaims, map[string]interface{}(claims))
		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after Middleware().
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		if p.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the resolved principal, nil when the
// request did not pass the auth middleware.
func PrincipalFromContext(c *gin.Context) *auth.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
