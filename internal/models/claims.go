package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Listing permissions
	PermissionPropertyCreate = "property:create"
	PermissionPropertyWrite  = "property:write"
	PermissionProjectCreate  = "project:create"
	PermissionProjectWrite   = "project:write"

	// Seeker permissions
	PermissionInquiryCreate = "inquiry:create"
	PermissionFavoriteWrite = "favorite:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	IsStaff      bool     `json:"is_staff"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionPropertyCreate,
			PermissionPropertyWrite,
			PermissionProjectCreate,
			PermissionProjectWrite,
			PermissionFavoriteWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleOwner:
		return []string{
			PermissionPropertyCreate,
			PermissionPropertyWrite,
			PermissionProjectCreate,
			PermissionProjectWrite,
			PermissionFavoriteWrite,
		}
	case RoleSeeker:
		return []string{
			PermissionPropertyCreate,
			PermissionProjectCreate,
			PermissionInquiryCreate,
			PermissionFavoriteWrite,
		}
	default:
		return []string{}
	}
}
