package services

import (
	"travel-portal/constants"
	"travel-portal/types"
)

// CanAccess reports whether p may read or change a record owned by
// ownerID. Staff may act on any record.
func CanAccess(p types.Principal, ownerID string) bool {
	if constants.IsStaff(p.Role) {
		return true
	}
	return ownerID != "" && p.UserID == ownerID
}

// HasRole reports whether p holds one of roles.
func HasRole(p types.Principal, roles ...string) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
