package auth

import (
	"net/http"
	"strings"
)

// HeaderAccessToken is the optional secondary credential used only for
// the user-info email fallback.
const HeaderAccessToken = "X-Access-Token"

const bearerPrefix = "Bearer "

// Credentials are the raw tokens pulled from request headers. Either
// field may be empty; absence is represented, never an error.
type Credentials struct {
	Bearer      string
	AccessToken string
}

// ExtractCredentials reads the Authorization bearer token and the
// optional access token from the given headers. The "Bearer " prefix is
// matched case-sensitively; a malformed Authorization header yields an
// empty bearer token.
func ExtractCredentials(h http.Header) Credentials {
	var c Credentials
	if v := h.Get("Authorization"); strings.HasPrefix(v, bearerPrefix) {
		c.Bearer = v[len(bearerPrefix):]
	}
	c.AccessToken = h.Get(HeaderAccessToken)
	return c
}
