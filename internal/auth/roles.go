package auth

import (
	"context"
	"time"

	"github.com/nesba5git/onpointflies/pkg/logger"
	"github.com/nesba5git/onpointflies/pkg/metrics"
)

// RecordStore is the persistence port for user records, keyed by Auth0
// subject ID. Get returns (nil, nil) when no record exists. The port
// never hides failures; the resolver decides the degradation policy.
type RecordStore interface {
	Get(ctx context.Context, sub string) (map[string]interface{}, error)
	Set(ctx context.Context, sub string, record map[string]interface{}) error
}

// GrantReason names the precedence rule that produced a role.
type GrantReason string

const (
	// ReasonAllowList: the token's email or sub matched ADMIN_EMAILS.
	ReasonAllowList GrantReason = "allowlist"
	// ReasonStoredRole: the persisted user record carries role=admin.
	ReasonStoredRole GrantReason = "stored_role"
	// ReasonStoredEmail: the token carried no email, but the stored
	// record's email matched ADMIN_EMAILS.
	ReasonStoredEmail GrantReason = "stored_email_allowlist"
	// ReasonDefault: no rule granted admin.
	ReasonDefault GrantReason = "default"
)

// RoleDecision captures a role resolution and enough detail for the
// diagnostic endpoint to explain it.
type RoleDecision struct {
	Role           string
	Reason         GrantReason
	EffectiveEmail string
	StorageOK      bool
	RecordExists   bool
	StoredEmail    string
	StoredRole     string
}

// RoleResolver combines the static allow-list with the persisted user
// record. Persistence is best-effort: a storage outage never blocks an
// allow-listed administrator, and never fails the request.
type RoleResolver struct {
	allow *AllowList
	store RecordStore
}

func NewRoleResolver(allow *AllowList, store RecordStore) *RoleResolver {
	return &RoleResolver{allow: allow, store: store}
}

// AllowList exposes the configured allow-list (used by diagnostics for
// its entry count).
func (r *RoleResolver) AllowList() *AllowList { return r.allow }

// Inspect computes the role for p without persisting anything. Used by
// the diagnostic endpoint, which must stay read-only.
func (r *RoleResolver) Inspect(ctx context.Context, p *Principal) RoleDecision {
	d, _ := r.decide(ctx, p)
	return d
}

// Resolve computes the role for p, sets it, and writes the merged user
// record back. Precedence: live allow-list match, then persisted admin
// role, then allow-list re-check against the stored email when the
// token carried none. A stale persisted demotion never overrides a live
// allow-list grant.
func (r *RoleResolver) Resolve(ctx context.Context, p *Principal) RoleDecision {
	d, stored := r.decide(ctx, p)
	p.Role = d.Role
	metrics.RoleResolutions.WithLabelValues(d.Role, string(d.Reason)).Inc()

	if r.store == nil || !d.StorageOK {
		return d
	}
	if err := r.store.Set(ctx, p.Sub, mergeRecord(stored, p, d.Role)); err != nil {
		logger.Warnf("user record write failed for %s: %v", p.Sub, err)
		metrics.StorageFailures.WithLabelValues("set").Inc()
		d.StorageOK = false
	}
	return d
}

func (r *RoleResolver) decide(ctx context.Context, p *Principal) (RoleDecision, map[string]interface{}) {
	d := RoleDecision{Role: RoleUser, Reason: ReasonDefault, EffectiveEmail: p.Email, StorageOK: true}

	var stored map[string]interface{}
	if r.store != nil {
		var err error
		stored, err = r.store.Get(ctx, p.Sub)
		if err != nil {
			logger.Warnf("user record read failed for %s: %v", p.Sub, err)
			metrics.StorageFailures.WithLabelValues("get").Inc()
			d.StorageOK = false
			stored = nil
		}
	}
	if stored != nil {
		d.RecordExists = true
		d.StoredEmail, _ = stored["email"].(string)
		d.StoredRole, _ = stored["role"].(string)
	}
	if p.Email == "" && d.StoredEmail != "" {
		d.EffectiveEmail = d.StoredEmail
	}

	switch {
	case r.allow.Contains(p.Email) || r.allow.Contains(p.Sub):
		d.Role = RoleAdmin
		d.Reason = ReasonAllowList
	case d.StoredRole == RoleAdmin:
		d.Role = RoleAdmin
		d.Reason = ReasonStoredRole
	case p.Email == "" && r.allow.Contains(d.StoredEmail):
		d.Role = RoleAdmin
		d.Reason = ReasonStoredEmail
	case d.StoredRole != "":
		// preserve a stored non-admin role rather than resetting it
		d.Role = d.StoredRole
	}
	return d, stored
}

// mergeRecord layers the incoming principal over the stored record.
// Fields the update does not set survive, unknown stored keys survive,
// created_at is written exactly once.
func mergeRecord(stored map[string]interface{}, p *Principal, role string) map[string]interface{} {
	doc := make(map[string]interface{}, len(stored)+6)
	for k, v := range stored {
		doc[k] = v
	}
	doc["auth0_id"] = p.Sub
	if p.Email != "" {
		doc["email"] = p.Email
	}
	if p.Name != "" {
		doc["name"] = p.Name
	}
	if p.Picture != "" {
		doc["picture"] = p.Picture
	}
	doc["role"] = role

	now := time.Now().UTC().Format(time.RFC3339)
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	doc["updated_at"] = now
	return doc
}
