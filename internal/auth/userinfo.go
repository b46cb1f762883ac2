package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// UserInfo is the subset of the provider's user-info response we need.
type UserInfo struct {
	Subject string
	Email   string
}

// UserInfoLookup queries the identity provider's user-info endpoint
// with a bearer access token.
type UserInfoLookup interface {
	Lookup(ctx context.Context, accessToken string) (*UserInfo, error)
}

// OIDCUserInfo resolves the user-info endpoint through OIDC discovery.
type OIDCUserInfo struct {
	provider *oidc.Provider
}

// NewOIDCUserInfo discovers the provider for the given issuer.
func NewOIDCUserInfo(ctx context.Context, issuer string) (*OIDCUserInfo, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &OIDCUserInfo{provider: provider}, nil
}

func (c *OIDCUserInfo) Lookup(ctx context.Context, accessToken string) (*UserInfo, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	ui, err := c.provider.UserInfo(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	return &UserInfo{Subject: ui.Subject, Email: ui.Email}, nil
}
