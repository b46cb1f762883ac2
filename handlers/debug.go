package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nesba5git/onpointflies/internal/auth"
	"github.com/nesba5git/onpointflies/internal/config"
)

// DebugHandler serves the auth diagnostic report. It runs the identity
// chain itself instead of sitting behind the auth middleware. The full
// report is only returned to verified callers; a failed verification
// yields a plain 401 so the environment details stay private.
type DebugHandler struct {
	cfg      config.Auth0Config
	verifier auth.TokenVerifier
	emails   *auth.EmailResolver
	roles    *auth.RoleResolver
}

func NewDebugHandler(cfg config.Auth0Config, verifier auth.TokenVerifier, emails *auth.EmailResolver, roles *auth.RoleResolver) *DebugHandler {
	return &DebugHandler{cfg: cfg, verifier: verifier, emails: emails, roles: roles}
}

func (h *DebugHandler) Report(c *gin.Context) {
	creds := auth.ExtractCredentials(c.Request.Header)
	if creds.Bearer == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "errorCode": string(auth.FailureNoToken)})
		return
	}
	if h.verifier == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication is not configured", "errorCode": string(auth.FailureServerMisconfigured)})
		return
	}
	claims, err := h.verifier.Verify(c.Request.Context(), creds.Bearer)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "errorCode": string(auth.KindOf(err))})
		return
	}

	allow := h.roles.AllowList()
	report := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"AUTH0_DOMAIN_SET":    h.cfg.Domain != "",
			"AUTH0_CLIENT_ID_SET": h.cfg.ClientID != "",
			"ADMIN_EMAILS_SET":    h.cfg.AdminEmails != "",
			"ADMIN_EMAILS_COUNT":  allow.Len(),
			"GO_VERSION":          runtime.Version(),
		},
		"headers": gin.H{
			"hasAuthorization": true,
			"hasXAccessToken":  creds.AccessToken != "",
		},
	}

	p := auth.NewPrincipal(claims)
	p.Email = h.emails.Resolve(c.Request.Context(), claims, creds.AccessToken)
	report["auth"] = gin.H{
		"success":      true,
		"sub":          p.Sub,
		"emailInToken": p.Email != "",
		"email":        orNil(p.Email),
		"name":         orNil(p.Name),
	}

	// read-only resolution, nothing is persisted from here
	d := h.roles.Inspect(c.Request.Context(), p)

	report["adminCheck"] = gin.H{
		"emailChecked": orDefault(p.Email, "(none)"),
		"subChecked":   p.Sub,
		"emailMatch":   p.Email != "" && allow.Contains(p.Email),
		"subMatch":     allow.Contains(p.Sub),
	}
	report["storageStatus"] = gin.H{
		"accessible":       d.StorageOK,
		"userRecordExists": d.RecordExists,
		"storedEmail":      orNil(d.StoredEmail),
		"storedRole":       orNil(d.StoredRole),
	}
	report["result"] = gin.H{
		"finalRole":           d.Role,
		"roleReason":          string(d.Reason),
		"effectiveEmail":      orNil(d.EffectiveEmail),
		"wouldGetAdminAccess": d.Role == auth.RoleAdmin,
	}

	hints := []string{}
	if p.Email == "" {
		hints = append(hints, "Email is MISSING from the ID token. Add your Auth0 user ID to ADMIN_EMAILS: "+p.Sub)
		hints = append(hints, "Or configure Auth0 to include email in the ID token (Actions > Login Flow)")
	}
	if h.cfg.AdminEmails == "" {
		hints = append(hints, "ADMIN_EMAILS is not configured. Set it in the service environment.")
	}
	if p.Email != "" && h.cfg.AdminEmails != "" && !allow.Contains(p.Email) && !allow.Contains(p.Sub) {
		hints = append(hints, fmt.Sprintf("Your email %q does not match any entry in ADMIN_EMAILS. Ensure ADMIN_EMAILS contains: %s or %s", p.Email, p.Email, p.Sub))
	}
	if d.Role == auth.RoleAdmin {
		hints = append(hints, "Admin access WILL be granted. Reason: "+string(d.Reason))
	}
	report["hints"] = hints

	c.JSON(http.StatusOK, report)
}

func orNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func orDefault(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
