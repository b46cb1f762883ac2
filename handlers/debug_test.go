package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nesba5git/onpointflies/internal/auth"
	"github.com/nesba5git/onpointflies/internal/config"
	"github.com/nesba5git/onpointflies/internal/users"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, raw string) (auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func debugRouter(verifier auth.TokenVerifier, allowList string, store *users.MemoryStore) *gin.Engine {
	cfg := config.Auth0Config{Domain: "tenant.example.com", ClientID: "client-123", AdminEmails: allowList}
	roles := auth.NewRoleResolver(auth.ParseAllowList(allowList), store)
	h := NewDebugHandler(cfg, verifier, auth.NewEmailResolver(nil), roles)

	g := gin.New()
	g.GET("/api/auth-debug", h.Report)
	return g
}

func debugReport(t *testing.T, g *gin.Engine, bearer string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth-debug", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	return w.Code, report
}

func TestDebugReport_NoToken(t *testing.T) {
	g := debugRouter(&stubVerifier{}, "admin@x.com", users.NewMemoryStore())

	code, body := debugReport(t, g, "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "no_token", body["errorCode"])
	require.Equal(t, "missing bearer token", body["error"])

	// nothing beyond the error reaches unauthenticated callers
	require.Len(t, body, 2)
	require.NotContains(t, body, "environment")
	require.NotContains(t, body, "headers")
}

func TestDebugReport_InvalidToken(t *testing.T) {
	v := &stubVerifier{err: auth.NewError(auth.FailureTokenExpired, "expired")}
	g := debugRouter(v, "", users.NewMemoryStore())

	code, body := debugReport(t, g, "some-token")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "token_expired", body["errorCode"])
	require.Len(t, body, 2)
	require.NotContains(t, body, "environment")
}

func TestDebugReport_EnvironmentForVerifiedCaller(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{"sub": "s1"}}
	g := debugRouter(v, "admin@x.com", users.NewMemoryStore())

	code, report := debugReport(t, g, "good")
	require.Equal(t, http.StatusOK, code)

	env := report["environment"].(map[string]interface{})
	require.Equal(t, true, env["ADMIN_EMAILS_SET"])
	require.Equal(t, float64(1), env["ADMIN_EMAILS_COUNT"])

	headers := report["headers"].(map[string]interface{})
	require.Equal(t, true, headers["hasAuthorization"])
}

func TestDebugReport_AdminByAllowList(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{"sub": "s1", "email": "admin@x.com"}}
	store := users.NewMemoryStore()
	g := debugRouter(v, "admin@x.com", store)

	code, report := debugReport(t, g, "good")
	require.Equal(t, http.StatusOK, code)

	result := report["result"].(map[string]interface{})
	require.Equal(t, "admin", result["finalRole"])
	require.Equal(t, "allowlist", result["roleReason"])
	require.Equal(t, true, result["wouldGetAdminAccess"])

	adminCheck := report["adminCheck"].(map[string]interface{})
	require.Equal(t, true, adminCheck["emailMatch"])
	require.Equal(t, false, adminCheck["subMatch"])

	// diagnostics never persist anything
	rec, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestDebugReport_OrdinaryUserWithHints(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{"sub": "s1"}}
	g := debugRouter(v, "admin@x.com", users.NewMemoryStore())

	code, report := debugReport(t, g, "good")
	require.Equal(t, http.StatusOK, code)

	result := report["result"].(map[string]interface{})
	require.Equal(t, "user", result["finalRole"])

	authSection := report["auth"].(map[string]interface{})
	require.Equal(t, false, authSection["emailInToken"])

	hints := report["hints"].([]interface{})
	require.NotEmpty(t, hints)
	require.Contains(t, hints[0], "s1")
}
