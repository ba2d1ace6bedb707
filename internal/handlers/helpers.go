package handlers

import (
	"errors"
	"log"
	"strconv"

	apperrors "realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// fieldErrorer is satisfied by the per-service ValidationError types.
type fieldErrorer interface {
	ValidationFields() map[string]string
}

func getClaims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok
}

// optionalClaims returns nil for anonymous requests that passed through
// the optional auth middleware.
func optionalClaims(c *fiber.Ctx) *models.UserClaims {
	claims, _ := c.Locals("claims").(*models.UserClaims)
	return claims
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// serviceError translates a service layer failure into an HTTP response.
// Validation failures carry their field map, domain sentinels map onto
// 404/403/400 by code, anything else is a 500.
func serviceError(c *fiber.Ctx, err error) error {
	var fe fieldErrorer
	if errors.As(err, &fe) {
		return utils.ValidationFailed(c, fe.ValidationFields())
	}

	var de *apperrors.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case "PROPERTY_NOT_FOUND", "PROJECT_NOT_FOUND", "FAVORITE_NOT_FOUND":
			return utils.NotFound(c, de.Message)
		case "NOT_OWNER", "NOT_CREATOR", "SEEKER_ONLY":
			return utils.Forbidden(c, de.Message)
		default:
			return utils.BadRequest(c, de.Message)
		}
	}

	if errors.Is(err, repositories.ErrRecordNotFound) || errors.Is(err, repositories.ErrUserNotFound) {
		return utils.NotFound(c, "resource not found")
	}

	log.Printf("unexpected service error: %v", err)
	return utils.InternalError(c, "something went wrong")
}

// Query parsing helpers for list filters.

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryUintPtr(c *fiber.Ctx, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func queryUint(c *fiber.Ctx, key string) uint {
	v, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryBoolPtr(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
