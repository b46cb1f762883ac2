package models

// User is the durable per-subject record view returned by the API. The
// stores themselves trade in raw maps so that fields written by other
// deployments survive round-trips; this struct is the typed projection.
type User struct {
	Auth0ID   string `json:"auth0_id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Picture   string `json:"picture,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UserFromRecord projects a stored record onto the typed view. A record
// without a role defaults to "user".
func UserFromRecord(rec map[string]interface{}) *User {
	if rec == nil {
		return nil
	}
	u := &User{
		Auth0ID:   str(rec, "auth0_id"),
		Email:     str(rec, "email"),
		Name:      str(rec, "name"),
		Picture:   str(rec, "picture"),
		Role:      str(rec, "role"),
		CreatedAt: str(rec, "created_at"),
		UpdatedAt: str(rec, "updated_at"),
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return u
}

func str(m map[string]interface{}, k string) string {
	v, _ := m[k].(string)
	return v
}
