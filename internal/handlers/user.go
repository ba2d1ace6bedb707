package handlers

import (
	"errors"

	"realtychance/internal/models"
	"realtychance/internal/services/user"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUser creates a seeker account. Every new account starts as a
// seeker; listing a property or project promotes it.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	return h.register(c, models.RoleSeeker)
}

// RegisterOwner creates an account that starts with the owner role.
func (h *UserHandler) RegisterOwner(c *fiber.Ctx) error {
	return h.register(c, models.RoleOwner)
}

// RegisterSeeker is the explicit seeker variant of registration.
func (h *UserHandler) RegisterSeeker(c *fiber.Ctx) error {
	return h.register(c, models.RoleSeeker)
}

func (h *UserHandler) register(c *fiber.Ctx, role string) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Register(&input, role)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return utils.ValidationFailed(c, map[string]string{"email": err.Error()})
		}
		if errors.Is(err, user.ErrPhoneTaken) {
			return utils.ValidationFailed(c, map[string]string{"phone": err.Error()})
		}
		return serviceError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"id":        created.ID,
		"phone":     created.Phone,
		"email":     created.Email,
		"full_name": created.FullName,
		"role":      created.Role,
	})
}

// MyRole reports the caller's current role from the database, not the
// token, so a promotion shows up without re-login.
func (h *UserHandler) MyRole(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	u, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":    u.ID,
		"phone": u.Phone,
		"role":  u.Role,
	})
}
