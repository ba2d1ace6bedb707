// Package middleware provides HTTP middleware for the fiber application:
// JWT validation, optional authentication for public-but-role-aware
// endpoints, and the role/permission gates.
package middleware

import (
	"log"
	"strings"

	"realtychance/internal/models"
	"realtychance/internal/services/auth"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT tokens and adds the user claims to the
// request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler requires a valid bearer token. It checks the signature, the
// expiry, and that the token version still matches the stored user.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	claims, err := m.claimsFromRequest(c)
	if err != nil {
		return utils.Unauthorized(c, err.Error())
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// OptionalHandler attaches claims when a valid token is present but lets
// anonymous requests through. List endpoints that are public yet show more
// to admins (project listings) use this.
func (m *AuthMiddleware) OptionalHandler(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}

	claims, err := m.claimsFromRequest(c)
	if err != nil {
		// A presented-but-invalid token is rejected rather than
		// silently downgraded to anonymous.
		return utils.Unauthorized(c, err.Error())
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

func (m *AuthMiddleware) claimsFromRequest(c *fiber.Ctx) (*models.UserClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errInvalidFormat
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return nil, errInvalidToken
	}

	currentVersion, err := m.authService.GetUserTokenVersion(claims.UserID)
	if err != nil {
		log.Printf("user %d from token not found", claims.UserID)
		return nil, errInvalidToken
	}
	if claims.TokenVersion != currentVersion {
		log.Printf("token version mismatch for user %d: token %d, current %d",
			claims.UserID, claims.TokenVersion, currentVersion)
		return nil, errSessionExpired
	}

	return claims, nil
}

var (
	errMissingHeader  = fiberError("missing authorization header")
	errInvalidFormat  = fiberError("invalid authorization format")
	errInvalidToken   = fiberError("invalid token")
	errSessionExpired = fiberError("session expired")
)

type fiberError string

func (e fiberError) Error() string { return string(e) }

// AdminOnly verifies that the request carries admin claims.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	if claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "admin access required")
	}
	return c.Next()
}

// StaffOnly verifies that the request carries staff claims. Admins are
// staff for this purpose.
func StaffOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.IsStaff && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "staff access required")
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return utils.Unauthorized(c, "unauthorized")
		}

		if claims.Role == models.RoleAdmin {
			return c.Next()
		}
		if claims.HasPermission(permission) {
			return c.Next()
		}
		return utils.Forbidden(c, "insufficient permissions")
	}
}
