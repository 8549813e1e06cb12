package policy

// Role is the closed set of console roles. Role strings arriving from the
// Auth API that do not match a known role normalize to [RoleUnknown] rather
// than falling through as free-form text.
type Role uint8

const (
	// RoleUnknown is the normalization target for absent or unrecognized roles.
	RoleUnknown Role = iota
	// RoleAdmin is the platform operator role.
	RoleAdmin
	// RoleReseller is the SIM/eSIM reseller role.
	RoleReseller
	// RoleClient is the end-customer role.
	RoleClient
	// RolePublicUser is an authenticated account with no console-specific role.
	RolePublicUser
)

// ParseRole maps a wire role string to a [Role]. Unrecognized strings map to
// [RoleUnknown].
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "reseller":
		return RoleReseller
	case "client":
		return RoleClient
	case "public_user":
		return RolePublicUser
	default:
		return RoleUnknown
	}
}

// String returns the wire representation of the role, or "unknown".
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleReseller:
		return "reseller"
	case RoleClient:
		return "client"
	case RolePublicUser:
		return "public_user"
	default:
		return "unknown"
	}
}

// Display returns the human label for the role.
func (r Role) Display() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleReseller:
		return "Reseller"
	case RoleClient:
		return "Client"
	case RolePublicUser:
		return "Public User"
	default:
		return "Unknown"
	}
}

// User is the identity value fetched from the Auth API. Only Role participates
// in authorization decisions; the profile fields are opaque to this package.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
}
