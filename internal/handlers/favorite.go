package handlers

import (
	"realtychance/internal/services/favorite"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	favoriteService favorite.Service
}

func NewFavoriteHandler(favoriteService favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) ListFavorites(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	p := utils.GetPagination(c, 1, 10)

	favorites, total, err := h.favoriteService.List(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(favorites, p))
}

// AddFavorite is idempotent: adding twice reports already_favorited
// instead of failing.
func (h *FavoriteHandler) AddFavorite(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	propertyID, err := parseID(c, "propertyID")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	fav, created, err := h.favoriteService.Add(claims.UserID, propertyID)
	if err != nil {
		return serviceError(c, err)
	}

	status := "already_favorited"
	if created {
		status = "added"
	}

	return utils.Success(c, fiber.Map{
		"id":          fav.ID,
		"property_id": fav.PropertyID,
		"status":      status,
	})
}

// RemoveFavorite unfavorites a property. Removing something that was never
// favorited is a 404 with a calm status rather than an error payload.
func (h *FavoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	propertyID, err := parseID(c, "propertyID")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	if err := h.favoriteService.Remove(claims.UserID, propertyID); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"property_id": propertyID,
		"status":      "removed",
	})
}

// RemoveFavoriteByID deletes one of the caller's favorite rows by its id.
func (h *FavoriteHandler) RemoveFavoriteByID(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid favorite ID")
	}

	if err := h.favoriteService.RemoveByID(claims.UserID, id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":     id,
		"status": "removed",
	})
}
