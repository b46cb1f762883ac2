package auth

// Roles assignable to a principal. The token never carries the role; it
// is always computed from the allow-list and the stored user record.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the resolved, request-scoped identity of a caller. It is
// built fresh from verified claims on every request and never cached.
type Principal struct {
	Sub     string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role"`
}

// Claims holds the verified token payload.
type Claims map[string]interface{}

// Subject returns the sub claim, empty when missing.
func (c Claims) Subject() string { return c.str("sub") }

func (c Claims) str(key string) string {
	v, _ := c[key].(string)
	return v
}

// NewPrincipal builds a Principal from verified claims. Email is left to
// the email resolver; cosmetic fields come straight from the token.
func NewPrincipal(claims Claims) *Principal {
	return &Principal{
		Sub:     claims.Subject(),
		Name:    claims.str("name"),
		Picture: claims.str("picture"),
	}
}
