package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/nesba5git/onpointflies/pkg/logger"
)

// ClockSkewLeeway is the tolerance applied to the expiry check. A token
// whose exp is within this window of the past is still accepted.
// Signature, issuer and audience checks get no such leniency.
const ClockSkewLeeway = 60 * time.Second

const jwksClientTimeout = 10 * time.Second

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Claims, error)
}

// Verifier checks RS256 signatures against the identity provider's
// published signing-key set. The key set is a process-wide read-through
// cache: refreshed in the background, and on demand (rate limited) when
// a token references an unknown key ID. Refreshes replace the cached
// set wholesale and are safe to run concurrently.
type Verifier struct {
	keys     keyfunc.Keyfunc
	issuer   string
	audience string
}

// NewVerifier builds a Verifier fetching keys from jwksURL. Returns a
// server_misconfigured error when issuer or audience is empty.
func NewVerifier(ctx context.Context, jwksURL, issuer, audience string) (*Verifier, error) {
	if issuer == "" || audience == "" {
		return nil, newError(FailureServerMisconfigured, "issuer or audience not configured", nil)
	}

	// NoErrorReturnFirstHTTPReq: start even if the provider is briefly
	// unreachable; keys load on the first refresh instead.
	store, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: jwksClientTimeout},
		Ctx:                       ctx,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           time.Hour,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Errorf("jwks refresh failed (%s): %v", jwksURL, err)
		},
	})
	if err != nil {
		return nil, err
	}

	client, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{jwksURL: store},
		RateLimitWaitMax:  time.Minute,
		RefreshUnknownKID: rate.NewLimiter(rate.Every(5*time.Minute), 1),
	})
	if err != nil {
		return nil, err
	}

	k, err := keyfunc.New(keyfunc.Options{Storage: client})
	if err != nil {
		return nil, err
	}

	return &Verifier{keys: k, issuer: issuer, audience: audience}, nil
}

// Verify parses and validates the raw token. On success the returned
// claims always carry a non-empty sub.
func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	if raw == "" {
		return nil, newError(FailureNoToken, "no bearer token", nil)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keys.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(ClockSkewLeeway),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, newError(FailureTokenInvalid, "token failed validation", nil)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, newError(FailureTokenInvalid, "token has no sub", err)
	}
	return Claims(claims), nil
}

// classify maps jwt parse errors onto the failure taxonomy. A bad
// signature, issuer or audience is always token_invalid, even when the
// token is also expired.
func classify(err error) *Error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience):
		return newError(FailureTokenInvalid, "token verification failed", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(FailureTokenExpired, "token expired", err)
	default:
		return newError(FailureTokenInvalid, "token verification failed", err)
	}
}
