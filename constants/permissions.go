package constants

// Roles carried by the bearer token
const (
	RoleUser        = "USER"
	RoleAdmin       = "ADMIN"
	RoleTravelAgent = "TRAVEL_AGENT"
)

// Role groups for convenience
var (
	StaffRoles = []string{
		RoleAdmin,
		RoleTravelAgent,
	}
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
		RoleTravelAgent,
	}
)

// IsStaff reports whether role may act on other users' records.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleTravelAgent
}
