package types

// Role is the closed set of platform roles. Role-specific behavior must
// switch on this type rather than comparing raw strings.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleTenant      Role = "tenant"
	RoleSystemOwner Role = "system_owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTenant, RoleSystemOwner:
		return true
	}
	return false
}

// Principal is the authenticated caller, resolved once per request by the
// auth middleware and passed explicitly to downstream code.
type Principal struct {
	UserID    string `json:"user_id"`
	ProfileID string `json:"profile_id"`
	Role      Role   `json:"role"`
}

func (p *Principal) IsAdmin() bool       { return p != nil && p.Role == RoleAdmin }
func (p *Principal) IsSystemOwner() bool { return p != nil && p.Role == RoleSystemOwner }
